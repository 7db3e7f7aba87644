package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/domain/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	txnRepo repository.StockTransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txnRepo repository.StockTransactionRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, txnRepo: txnRepo}
}

// Create crea un producto activo con CurrentStock = OpeningStock.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if unit == "" {
		return nil, domain.Invalid("unit", "requerido")
	}
	opening := in.OpeningStock.Round(inventory.QuantityScale)
	if opening.LessThan(decimal.Zero) {
		return nil, domain.Invalid("opening_stock", "no puede ser negativo")
	}
	if opening.GreaterThan(inventory.MaxQuantity) {
		return nil, domain.Invalid("opening_stock", "supera el máximo de "+inventory.MaxQuantity.StringFixed(inventory.QuantityScale))
	}
	now := time.Now()
	product := &entity.Product{
		Name:         name,
		Unit:         unit,
		OpeningStock: opening,
		CurrentStock: opening,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Unit devuelve la unidad base del producto (la usa la conversión de unidades antes del motor).
func (uc *ProductUseCase) Unit(ctx context.Context, id int64) (string, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return "", err
	}
	return product.Unit, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Count: len(items)},
	}, nil
}

// Update actualiza nombre o unidad. No modifica stock. La unidad solo cambia mientras el
// producto no tenga movimientos: saldos e historial están expresados en ella.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "no puede quedar vacío")
		}
		product.Name = name
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			return nil, domain.Invalid("unit", "no puede quedar vacío")
		}
		if !inventory.SameUnit(unit, product.Unit) {
			n, err := uc.txnRepo.CountByProduct(ctx, id)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				return nil, fmt.Errorf("%w: el producto tiene %d movimientos, no se puede cambiar la unidad", domain.ErrConflict, n)
			}
		}
		product.Unit = unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Deactivate es el borrado lógico: el producto deja de aceptar movimientos y de generar alertas.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsActive {
		product.IsActive = false
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	return ToProductResponse(product), nil
}

// Delete elimina físicamente un producto sin movimientos. Con movimientos devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.txnRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	// El repositorio traduce la violación de FK (planes o alertas que lo referencian) a ErrConflict.
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Product")
	}
	return product, nil
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		OpeningStock: p.OpeningStock,
		CurrentStock: p.CurrentStock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
