package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInRequest body para POST /api/stock/in. Quantity acepta string o número.
// Si Unit difiere de la unidad base del producto, se convierte antes de registrar.
type StockInRequest struct {
	ProductID       int64           `json:"product_id" validate:"required,gt=0"`
	Quantity        decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit            string          `json:"unit" validate:"max=50"`
	PONumber        string          `json:"po_number" validate:"max=100"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// StockOutRequest body para POST /api/stock/out.
type StockOutRequest struct {
	ProductID       int64           `json:"product_id" validate:"required,gt=0"`
	Quantity        decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit            string          `json:"unit" validate:"max=50"`
	SONumber        string          `json:"so_number" validate:"max=100"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// StockBatchLine una línea de un envío múltiple.
type StockBatchLine struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Unit      string          `json:"unit" validate:"max=50"`
	Reference string          `json:"reference" validate:"max=100"` // PO en entradas, SO en salidas
}

// StockBatchRequest body para POST /api/stock/{in,out}/batch.
type StockBatchRequest struct {
	Items           []StockBatchLine `json:"items" validate:"required,min=1,max=200,dive"`
	TransactionDate *time.Time       `json:"transaction_date"`
}

// TransactionResponse salida de un movimiento.
type TransactionResponse struct {
	ID               int64            `json:"id"`
	ProductID        int64            `json:"product_id"`
	UserID           int64            `json:"user_id"`
	Type             string           `json:"type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	OriginalQuantity *decimal.Decimal `json:"original_quantity,omitempty"`
	OriginalUnit     *string          `json:"original_unit,omitempty"`
	PreviousStock    decimal.Decimal  `json:"previous_stock"`
	NewStock         decimal.Decimal  `json:"new_stock"`
	PONumber         *string          `json:"po_number,omitempty"`
	SONumber         *string          `json:"so_number,omitempty"`
	TransactionDate  time.Time        `json:"transaction_date"`
	CreatedAt        time.Time        `json:"created_at"`
}

// MutationResponse resultado de una entrada o salida.
type MutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Product     ProductResponse     `json:"product"`
}

// BatchFailure detalle de la línea que detuvo el envío múltiple.
type BatchFailure struct {
	Index     int    `json:"index"`
	ProductID int64  `json:"product_id"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// BatchResponse resultado de un envío múltiple; las líneas aplicadas no se revierten.
type BatchResponse struct {
	Applied []MutationResponse `json:"applied"`
	Failed  *BatchFailure      `json:"failed,omitempty"`
	Skipped int                `json:"skipped"`
}

// TransactionListResponse lista paginada de movimientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
