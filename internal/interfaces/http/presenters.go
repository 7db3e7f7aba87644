package http

import (
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/application/inventory"
	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/application/usecase"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func toTransactionResponse(t *entity.StockTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               t.ID,
		ProductID:        t.ProductID,
		UserID:           t.UserID,
		Type:             t.Type,
		Quantity:         t.Quantity,
		OriginalQuantity: t.OriginalQuantity,
		OriginalUnit:     t.OriginalUnit,
		PreviousStock:    t.PreviousStock,
		NewStock:         t.NewStock,
		PONumber:         t.PONumber,
		SONumber:         t.SONumber,
		TransactionDate:  t.TransactionDate,
		CreatedAt:        t.CreatedAt,
	}
}

func toMutationResponse(r *inventory.MutationResult) dto.MutationResponse {
	return dto.MutationResponse{
		Transaction: toTransactionResponse(r.Transaction),
		Product:     *usecase.ToProductResponse(r.Product),
	}
}

func toPlanResponse(p *entity.WeeklyStockPlan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:              p.ID,
		ProductID:       p.ProductID,
		UserID:          p.UserID,
		PlannedQuantity: p.PlannedQuantity,
		Unit:            p.Unit,
		WeekStartDate:   p.WeekStartDate.Format(dateLayout),
		WeekEndDate:     p.WeekEndDate.Format(dateLayout),
		IsActive:        p.IsActive,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPlanResponses(list []*entity.WeeklyStockPlan) []dto.PlanResponse {
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	return out
}

func toShortfallResponses(list []planning.Shortfall) []dto.ShortfallResponse {
	out := make([]dto.ShortfallResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ShortfallResponse{
			ProductID:       s.ProductID,
			ProductName:     s.ProductName,
			CurrentStock:    s.CurrentStock,
			PlannedQuantity: s.PlannedQuantity,
			WeeklyPlanID:    s.WeeklyPlanID,
			Unit:            s.Unit,
		})
	}
	return out
}

func toAlertResponse(a *entity.LowStockAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		WeeklyPlanID:    a.WeeklyPlanID,
		CurrentStock:    a.CurrentStock,
		PlannedQuantity: a.PlannedQuantity,
		AlertLevel:      a.AlertLevel,
		IsResolved:      a.IsResolved,
		AlertDate:       a.AlertDate,
		ResolvedAt:      a.ResolvedAt,
	}
}

func toAlertResponses(list []*entity.LowStockAlert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return out
}
