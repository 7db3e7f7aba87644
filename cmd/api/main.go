package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/stock-planner-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/stock-planner-api/internal/application/analytics"
	"github.com/jhoicas/stock-planner-api/internal/application/auth"
	"github.com/jhoicas/stock-planner-api/internal/application/inventory"
	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/application/reports"
	"github.com/jhoicas/stock-planner-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-planner-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/realtime"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-planner-api/internal/interfaces/http"
	"github.com/jhoicas/stock-planner-api/pkg/config"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
)

// @title                       Stock Planner API
// @version                     1.0
// @description                 Movimientos de stock, planes semanales y alertas de stock bajo.
// @BasePath                    /api
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txnRepo := postgres.NewStockTransactionRepository(pool)
	planRepo := postgres.NewWeeklyPlanRepository(pool)
	alertRepo := postgres.NewLowStockAlertRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool, log)

	// Hub WebSocket: recibe stock_changed y low_stock_alerts
	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	stockUC := inventory.NewStockMutationUseCase(txRunner, txnRepo).WithNotifier(hub)
	productUC := usecase.NewProductUseCase(productRepo, txnRepo)
	planUC := planning.NewWeeklyPlanUseCase(planRepo, productRepo)
	alertUC := alerts.NewLowStockAlertUseCase(planUC, alertRepo, cfg.Inventory.AlertCriticalRatio, log).WithNotifier(hub)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, alertRepo, cfg.Inventory.DashboardLowStockThreshold)
	reportUC := reports.NewReportUseCase(
		txnRepo, alertRepo, productRepo,
		xlsx.NewTransactionExporter(), infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowOrigins}))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.DocsFile != "" {
		if _, err := os.Stat(cfg.HTTP.DocsFile); err != nil {
			log.Warn().Err(err).Str("file", cfg.HTTP.DocsFile).Msg("documentación swagger no disponible")
		} else {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsFile,
				Path:     "docs",
				Title:    cfg.App.Name + " API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.ClientCount()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:         authUC,
		Users:        authUC,
		Products:     productUC,
		Units:        productUC,
		Stock:        stockUC,
		Transactions: stockUC,
		Reports:      reportUC,
		Plans:        planUC,
		Alerts:       alertUC,
		Dashboard:    dashboardUC,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// cerrar conexiones ws antes de esperar a los handlers HTTP
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
