package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth         Authenticator
	Users        UserAdmin
	Products     ProductService
	Units        ProductUnitLookup
	Stock        StockMutator
	Transactions TransactionReader
	Reports      Reporter
	Plans        PlanService
	Alerts       AlertService
	Dashboard    DashboardSummarizer
	Hub          *realtime.Hub // nil desactiva /ws
	JWTSecret    string
}

// Reporter exportaciones Excel y PDF. Lo implementa *reports.ReportUseCase.
type Reporter interface {
	TransactionExporter
	AlertReporter
}

var (
	inventoryRoles = []string{
		entity.RoleSuperAdmin, entity.RoleInventoryHandler,
		entity.RoleStockInManager, entity.RoleStockOutManager,
	}
	catalogWriters = []string{entity.RoleSuperAdmin, entity.RoleInventoryHandler}
	stockInRoles   = []string{entity.RoleSuperAdmin, entity.RoleInventoryHandler, entity.RoleStockInManager}
	stockOutRoles  = []string{entity.RoleSuperAdmin, entity.RoleInventoryHandler, entity.RoleStockOutManager}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo super_admin)
	userHandler := NewUserHandler(deps.Users)
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)

	// Products
	productHandler := NewProductHandler(deps.Products)
	products := protected.Group("/products", RequireRole(inventoryRoles...))
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(catalogWriters...), productHandler.Create)
	products.Put("/:id", RequireRole(catalogWriters...), productHandler.Update)
	products.Post("/:id/deactivate", RequireRole(catalogWriters...), productHandler.Deactivate)
	products.Delete("/:id", RequireRole(catalogWriters...), productHandler.Delete)

	// Stock in / out
	stockHandler := NewStockHandler(deps.Stock, deps.Units)
	stock := protected.Group("/stock")
	stock.Post("/in", RequireRole(stockInRoles...), stockHandler.StockIn)
	stock.Post("/in/batch", RequireRole(stockInRoles...), stockHandler.StockInBatch)
	stock.Post("/out", RequireRole(stockOutRoles...), stockHandler.StockOut)
	stock.Post("/out/batch", RequireRole(stockOutRoles...), stockHandler.StockOutBatch)

	// Transactions (solo lectura); /export antes de /:id
	txnHandler := NewTransactionHandler(deps.Transactions, deps.Reports)
	txns := protected.Group("/transactions", RequireRole(inventoryRoles...))
	txns.Get("/", txnHandler.List)
	txns.Get("/export", txnHandler.Export)
	txns.Get("/:id", txnHandler.GetByID)

	// Weekly plans
	planHandler := NewPlanHandler(deps.Plans)
	plans := protected.Group("/plans", RequireRole(catalogWriters...))
	plans.Get("/current", planHandler.Current)
	plans.Get("/shortfalls", planHandler.Shortfalls)
	plans.Post("/", planHandler.Create)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)
	plans.Put("/:id", planHandler.Update)
	plans.Delete("/:id", planHandler.Deactivate)

	// Low stock alerts
	alertHandler := NewAlertHandler(deps.Alerts, deps.Reports)
	alertsGroup := protected.Group("/alerts", RequireRole(catalogWriters...))
	alertsGroup.Get("/", alertHandler.List)
	alertsGroup.Get("/report", alertHandler.Report)
	alertsGroup.Post("/check", alertHandler.Check)
	alertsGroup.Post("/:id/resolve", alertHandler.Resolve)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/summary", RequireRole(inventoryRoles...), dashboardHandler.GetSummary)

	// Live feed (token por query)
	if deps.Hub != nil {
		app.Get("/ws", RequireUpgrade(), AuthMiddleware(deps.JWTSecret), LiveFeed(deps.Hub))
	}
}
