// Package reports arma los reportes descargables: Excel de movimientos y PDF de alertas abiertas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

// MaxExportRows tope de filas por exportación.
const MaxExportRows = 10000

// ReportUseCase reúne los datos y delega el formato a los generadores.
type ReportUseCase struct {
	txnRepo     repository.StockTransactionRepository
	alertRepo   repository.LowStockAlertRepository
	productRepo repository.ProductRepository
	exporter    TransactionExporter
	pdf         AlertReportGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	txnRepo repository.StockTransactionRepository,
	alertRepo repository.LowStockAlertRepository,
	productRepo repository.ProductRepository,
	exporter TransactionExporter,
	pdf AlertReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		txnRepo:     txnRepo,
		alertRepo:   alertRepo,
		productRepo: productRepo,
		exporter:    exporter,
		pdf:         pdf,
		now:         time.Now,
	}
}

// ExportTransactions genera el .xlsx de los movimientos que cumplen el filtro.
// Retorna los bytes y el nombre sugerido del archivo.
func (uc *ReportUseCase) ExportTransactions(ctx context.Context, filter repository.TransactionFilter) ([]byte, string, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, "", domain.Invalid("from", "debe ser anterior o igual a to")
	}
	filter.Limit = MaxExportRows
	filter.Offset = 0
	list, err := uc.txnRepo.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("reports: listar movimientos: %w", err)
	}
	names := newProductNames(uc.productRepo)
	rows := make([]TransactionRow, 0, len(list))
	for _, t := range list {
		name, unit, err := names.lookup(ctx, t.ProductID)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, TransactionRow{Transaction: t, ProductName: name, Unit: unit})
	}
	now := uc.now()
	data, err := uc.exporter.ExportTransactions(rows, now)
	if err != nil {
		return nil, "", fmt.Errorf("reports: generar xlsx: %w", err)
	}
	return data, fmt.Sprintf("movimientos_%s.xlsx", now.Format("20060102_150405")), nil
}

// OpenAlertsPDF genera el PDF con todas las alertas sin resolver.
func (uc *ReportUseCase) OpenAlertsPDF(ctx context.Context) ([]byte, string, error) {
	unresolved := false
	list, err := uc.alertRepo.List(ctx, repository.AlertFilter{Resolved: &unresolved, Limit: MaxExportRows})
	if err != nil {
		return nil, "", fmt.Errorf("reports: listar alertas: %w", err)
	}
	names := newProductNames(uc.productRepo)
	rows := make([]AlertRow, 0, len(list))
	for _, a := range list {
		name, unit, err := names.lookup(ctx, a.ProductID)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, AlertRow{Alert: a, ProductName: name, Unit: unit})
	}
	now := uc.now()
	data, err := uc.pdf.GenerateOpenAlerts(rows, now)
	if err != nil {
		return nil, "", fmt.Errorf("reports: generar pdf: %w", err)
	}
	return data, fmt.Sprintf("alertas_%s.pdf", now.Format("20060102")), nil
}

// productNames cachea nombre y unidad por producto durante un reporte.
type productNames struct {
	repo  repository.ProductRepository
	cache map[int64]*entity.Product
}

func newProductNames(repo repository.ProductRepository) *productNames {
	return &productNames{repo: repo, cache: make(map[int64]*entity.Product)}
}

func (p *productNames) lookup(ctx context.Context, id int64) (string, string, error) {
	prod, ok := p.cache[id]
	if !ok {
		var err error
		prod, err = p.repo.GetByID(ctx, id)
		if err != nil {
			return "", "", fmt.Errorf("reports: obtener producto %d: %w", id, err)
		}
		p.cache[id] = prod
	}
	if prod == nil {
		return fmt.Sprintf("#%d", id), "", nil
	}
	return prod.Name, prod.Unit, nil
}
