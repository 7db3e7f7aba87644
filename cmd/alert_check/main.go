// alert_check ejecuta una pasada del motor de alertas de stock bajo y termina.
// Pensado para cron; repetirlo sin cambios de stock no crea alertas nuevas.
//
// Uso: go run ./cmd/alert_check
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/alerts"
	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-planner-api/pkg/config"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	planUC := planning.NewWeeklyPlanUseCase(postgres.NewWeeklyPlanRepository(pool), productRepo)
	alertUC := alerts.NewLowStockAlertUseCase(planUC, postgres.NewLowStockAlertRepository(pool), cfg.Inventory.AlertCriticalRatio, log)

	created, err := alertUC.ProcessLowStockChecking(ctx)
	if err != nil {
		log.Error().Err(err).Msg("chequeo de stock bajo")
		pool.Close()
		os.Exit(1)
	}
	for _, a := range created {
		log.Info().
			Int64("alert_id", a.ID).
			Int64("product_id", a.ProductID).
			Int64("weekly_plan_id", a.WeeklyPlanID).
			Str("level", a.AlertLevel).
			Str("current_stock", a.CurrentStock.StringFixed(3)).
			Str("planned_quantity", a.PlannedQuantity.StringFixed(3)).
			Msg("alerta creada")
	}
	log.Info().Int("created", len(created)).Msg("chequeo terminado")
}
