package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-planner-api/internal/domain/inventory"
	"github.com/jhoicas/stock-planner-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// StockMutationUseCase es la única vía para cambiar el stock de un producto.
// Cada movimiento lee el saldo con la fila bloqueada, valida, actualiza el producto y registra
// el movimiento en una sola transacción (todo o nada).
type StockMutationUseCase struct {
	txRunner TxRunner
	txnRepo  repository.StockTransactionRepository
	notifier StockNotifier
	now      func() time.Time
}

// NewStockMutationUseCase construye el motor. txnRepo se usa solo para consultas.
func NewStockMutationUseCase(txRunner TxRunner, txnRepo repository.StockTransactionRepository) *StockMutationUseCase {
	return &StockMutationUseCase{
		txRunner: txRunner,
		txnRepo:  txnRepo,
		now:      time.Now,
	}
}

// WithNotifier registra un StockNotifier para los movimientos confirmados.
func (uc *StockMutationUseCase) WithNotifier(n StockNotifier) *StockMutationUseCase {
	uc.notifier = n
	return uc
}

// StockInInput entrada para una entrada de stock. Quantity ya está en la unidad base del producto.
type StockInInput struct {
	ProductID        int64
	UserID           int64
	Quantity         decimal.Decimal
	Date             time.Time // cero = ahora
	PONumber         *string
	OriginalQuantity *decimal.Decimal
	OriginalUnit     *string
}

// StockOutInput entrada para una salida de stock.
type StockOutInput struct {
	ProductID        int64
	UserID           int64
	Quantity         decimal.Decimal
	Date             time.Time
	SONumber         *string
	OriginalQuantity *decimal.Decimal
	OriginalUnit     *string
}

// MutationResult movimiento registrado y producto con el saldo actualizado.
type MutationResult struct {
	Transaction *entity.StockTransaction
	Product     *entity.Product
}

// movement es la forma común de entrada y salida; reference es PO o SO según el tipo.
type movement struct {
	txType           string
	productID        int64
	userID           int64
	quantity         decimal.Decimal
	date             time.Time
	reference        *string
	originalQuantity *decimal.Decimal
	originalUnit     *string
}

// ApplyStockIn suma quantity al stock del producto y registra un movimiento stock_in.
func (uc *StockMutationUseCase) ApplyStockIn(ctx context.Context, in StockInInput) (*MutationResult, error) {
	return uc.apply(ctx, movement{
		txType:           entity.TransactionTypeStockIn,
		productID:        in.ProductID,
		userID:           in.UserID,
		quantity:         in.Quantity,
		date:             in.Date,
		reference:        in.PONumber,
		originalQuantity: in.OriginalQuantity,
		originalUnit:     in.OriginalUnit,
	})
}

// ApplyStockOut resta quantity del stock. Si quantity supera el saldo devuelve
// *domain.InsufficientStockError y no modifica nada.
func (uc *StockMutationUseCase) ApplyStockOut(ctx context.Context, in StockOutInput) (*MutationResult, error) {
	return uc.apply(ctx, movement{
		txType:           entity.TransactionTypeStockOut,
		productID:        in.ProductID,
		userID:           in.UserID,
		quantity:         in.Quantity,
		date:             in.Date,
		reference:        in.SONumber,
		originalQuantity: in.OriginalQuantity,
		originalUnit:     in.OriginalUnit,
	})
}

func (uc *StockMutationUseCase) apply(ctx context.Context, m movement) (*MutationResult, error) {
	if m.productID <= 0 {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if m.userID <= 0 {
		return nil, domain.Invalid("user_id", "requerido")
	}
	qty, err := domaininv.NormalizeQuantity(m.quantity)
	if err != nil {
		return nil, err
	}
	origQty, origUnit, err := normalizeOriginal(m.originalQuantity, m.originalUnit)
	if err != nil {
		return nil, err
	}
	ref := trimmedOrNil(m.reference)
	date := m.date
	if date.IsZero() {
		date = uc.now()
	}

	var result *MutationResult
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		// Bloquea la fila del producto: dos salidas concurrentes se serializan aquí
		product, err := productRepo.GetForUpdate(ctx, m.productID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return domain.NotFound("Product")
		}
		previous := product.CurrentStock
		newStock, err := domaininv.ApplyMovement(m.txType, previous, qty)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}
		txn := &entity.StockTransaction{
			ProductID:        product.ID,
			UserID:           m.userID,
			Type:             m.txType,
			Quantity:         qty,
			OriginalQuantity: origQty,
			OriginalUnit:     origUnit,
			PreviousStock:    previous,
			NewStock:         newStock,
			TransactionDate:  date,
		}
		if m.txType == entity.TransactionTypeStockIn {
			txn.PONumber = ref
		} else {
			txn.SONumber = ref
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		product.CurrentStock = newStock
		product.UpdatedAt = uc.now()
		result = &MutationResult{Transaction: txn, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.StockChanged(result.Product, result.Transaction)
	}
	return result, nil
}

// BatchLine una línea de un envío con varios productos.
type BatchLine struct {
	ProductID        int64
	Quantity         decimal.Decimal
	Reference        *string // PO en entradas, SO en salidas
	OriginalQuantity *decimal.Decimal
	OriginalUnit     *string
}

// BatchResult resultado de ApplyBatch. Las líneas anteriores a FailedIndex quedan aplicadas.
type BatchResult struct {
	Applied         []*MutationResult
	FailedIndex     int // -1 si todas se aplicaron
	FailedProductID int64
	Err             error
	Skipped         int // líneas posteriores a la fallida, no intentadas
}

// ApplyBatch aplica cada línea como una unidad atómica independiente y se detiene en la primera
// que falla. No hay compensación: las líneas ya aplicadas permanecen.
func (uc *StockMutationUseCase) ApplyBatch(
	ctx context.Context,
	txType string,
	userID int64,
	date time.Time,
	lines []BatchLine,
) (*BatchResult, error) {
	if !entity.IsValidTransactionType(txType) {
		return nil, domain.Invalid("type", "tipo de movimiento desconocido")
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("items", "se requiere al menos una línea")
	}
	res := &BatchResult{FailedIndex: -1, Applied: make([]*MutationResult, 0, len(lines))}
	for i, line := range lines {
		out, err := uc.apply(ctx, movement{
			txType:           txType,
			productID:        line.ProductID,
			userID:           userID,
			quantity:         line.Quantity,
			date:             date,
			reference:        line.Reference,
			originalQuantity: line.OriginalQuantity,
			originalUnit:     line.OriginalUnit,
		})
		if err != nil {
			res.FailedIndex = i
			res.FailedProductID = line.ProductID
			res.Err = err
			res.Skipped = len(lines) - i - 1
			return res, nil
		}
		res.Applied = append(res.Applied, out)
	}
	return res, nil
}

// GetTransaction obtiene un movimiento por ID.
func (uc *StockMutationUseCase) GetTransaction(ctx context.Context, id int64) (*entity.StockTransaction, error) {
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.NotFound("Transaction")
	}
	return txn, nil
}

// ListTransactions lista movimientos filtrados, más recientes primero.
func (uc *StockMutationUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	if filter.Type != nil && !entity.IsValidTransactionType(*filter.Type) {
		return nil, domain.Invalid("type", "debe ser stock_in o stock_out")
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.Invalid("from", "debe ser anterior a to")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.txnRepo.List(ctx, filter)
}

// normalizeOriginal exige que cantidad y unidad originales vengan juntas.
func normalizeOriginal(qty *decimal.Decimal, unit *string) (*decimal.Decimal, *string, error) {
	u := trimmedOrNil(unit)
	if qty == nil && u == nil {
		return nil, nil, nil
	}
	if qty == nil || u == nil {
		return nil, nil, domain.Invalid("original_quantity", "cantidad y unidad originales van juntas")
	}
	if !qty.GreaterThan(decimal.Zero) {
		return nil, nil, domain.Invalid("original_quantity", "debe ser mayor que cero")
	}
	q := *qty
	return &q, u, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
