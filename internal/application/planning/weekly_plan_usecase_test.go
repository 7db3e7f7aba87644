package planning_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/application/planning"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

type fakeProducts struct {
	repository.ProductRepository
	items map[int64]*entity.Product
}

func (f fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.items[id], nil
}

type fakePlans struct {
	items []*entity.WeeklyStockPlan
	stock map[int64]decimal.Decimal
}

func (f *fakePlans) Create(_ context.Context, p *entity.WeeklyStockPlan) error {
	p.ID = int64(len(f.items) + 1)
	cp := *p
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakePlans) GetByID(_ context.Context, id int64) (*entity.WeeklyStockPlan, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlans) Update(_ context.Context, p *entity.WeeklyStockPlan) error {
	for i, cur := range f.items {
		if cur.ID == p.ID {
			cp := *p
			f.items[i] = &cp
		}
	}
	return nil
}

func (f *fakePlans) List(_ context.Context, filter repository.PlanFilter) ([]*entity.WeeklyStockPlan, error) {
	var out []*entity.WeeklyStockPlan
	for _, p := range f.items {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlans) ListCurrent(_ context.Context, asOf time.Time) ([]*entity.WeeklyStockPlan, error) {
	var out []*entity.WeeklyStockPlan
	for _, p := range f.items {
		if p.IsActive && p.Covers(asOf) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlans) ListCurrentWithStock(ctx context.Context, asOf time.Time) ([]repository.PlanStock, error) {
	cur, _ := f.ListCurrent(ctx, asOf)
	out := make([]repository.PlanStock, 0, len(cur))
	for _, p := range cur {
		out = append(out, repository.PlanStock{Plan: *p, ProductName: "Harina", ProductUnit: "kg", CurrentStock: f.stock[p.ProductID]})
	}
	return out, nil
}

func newUC() (*planning.WeeklyPlanUseCase, *fakePlans) {
	plans := &fakePlans{stock: map[int64]decimal.Decimal{}}
	products := fakeProducts{items: map[int64]*entity.Product{
		1: {ID: 1, Name: "Harina", Unit: "kg", IsActive: true},
		2: {ID: 2, Name: "Sal", Unit: "kg", IsActive: false},
	}}
	return planning.NewWeeklyPlanUseCase(plans, products), plans
}

func validInput() planning.CreatePlanInput {
	return planning.CreatePlanInput{
		ProductID: 1, UserID: 4, PlannedQuantity: d("20"),
		WeekStartDate: day(2026, 10, 12), WeekEndDate: day(2026, 10, 18),
	}
}

func TestCreate_UsaUnidadDelProducto(t *testing.T) {
	uc, _ := newUC()
	plan, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "kg", plan.Unit)
	assert.True(t, plan.IsActive)
	assert.Equal(t, int64(4), plan.UserID)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	in := validInput()
	in.PlannedQuantity = decimal.Zero
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.WeekStartDate, in.WeekEndDate = day(2026, 10, 19), day(2026, 10, 18)
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "inicio posterior al fin")

	in = validInput()
	in.WeekEndDate = in.WeekStartDate
	_, err = uc.Create(ctx, in)
	assert.NoError(t, err, "un plan de un solo día es válido")

	in = validInput()
	in.ProductID = 2
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inactivo")
}

func TestUpdate_SoloPlanesActivos(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	plan, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	qty := d("25.5")
	updated, err := uc.Update(ctx, plan.ID, planning.UpdatePlanInput{PlannedQuantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.PlannedQuantity.Equal(qty))

	_, err = uc.Deactivate(ctx, plan.ID)
	require.NoError(t, err)
	_, err = uc.Update(ctx, plan.ID, planning.UpdatePlanInput{PlannedQuantity: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, 99, planning.UpdatePlanInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivate_Idempotente(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	plan, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	first, err := uc.Deactivate(ctx, plan.ID)
	require.NoError(t, err)
	second, err := uc.Deactivate(ctx, plan.ID)
	require.NoError(t, err)
	assert.False(t, first.IsActive)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestCurrentWeekPlans_LimitesInclusivos(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	for _, asOf := range []time.Time{day(2026, 10, 12), day(2026, 10, 18).Add(23 * time.Hour)} {
		got, err := uc.CurrentWeekPlans(ctx, asOf)
		require.NoError(t, err)
		assert.Len(t, got, 1, asOf.String())
	}
	got, err := uc.CurrentWeekPlans(ctx, day(2026, 10, 19))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShortfalls(t *testing.T) {
	uc, plans := newUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, validInput())
	require.NoError(t, err)
	asOf := day(2026, 10, 14)

	plans.stock[1] = d("20")
	got, err := uc.Shortfalls(ctx, asOf)
	require.NoError(t, err)
	assert.Empty(t, got, "stock igual al plan no es faltante")

	plans.stock[1] = d("12.5")
	got, err = uc.Shortfalls(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Harina", got[0].ProductName)
	assert.True(t, got[0].CurrentStock.Equal(d("12.5")))
	assert.True(t, got[0].PlannedQuantity.Equal(d("20")))
	assert.Equal(t, "kg", got[0].Unit)
}
