package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrUsernameTaken       = errors.New("el usuario ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, intente de nuevo")
	ErrStorageUnavailable  = errors.New("almacenamiento no disponible")
)

// NotFoundError indica qué entidad no existe. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Entity string // Product, Alert, WeeklyPlan, Transaction, User
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado", e.Entity)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound construye un NotFoundError para la entidad indicada.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// InsufficientStockError lleva las cantidades disponible y solicitada; el operador
// las necesita para corregir la salida.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
		e.Available.StringFixed(3), e.Requested.StringFixed(3))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError describe un campo de entrada rechazado antes de cualquier lectura o escritura.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
