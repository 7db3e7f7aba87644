package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-planner-api/internal/domain"
)

// pgCode devuelve el SQLSTATE del error, o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila referencia (o es referenciada por) otra.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation 23514: por ejemplo current_stock >= 0.
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// isNumericOverflow 22003: el valor no cabe en NUMERIC(14,3).
func isNumericOverflow(err error) bool {
	return pgCode(err) == "22003"
}

// isRetryable serialization_failure (40001) y deadlock_detected (40P01).
func isRetryable(err error) bool {
	switch pgCode(err) {
	case "40001", "40P01":
		return true
	}
	return false
}

// isConnectionError la base no está alcanzable: error de conexión, timeout, clase 08 o cierre del servidor.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	code := pgCode(err)
	if strings.HasPrefix(code, "08") || code == "57P01" || code == "57P03" {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// storageErr envuelve err con op. Las fallas de conexión quedan como domain.ErrStorageUnavailable
// y los desbordes numéricos como domain.ErrInvalidInput.
func storageErr(op string, err error) error {
	if isNumericOverflow(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
