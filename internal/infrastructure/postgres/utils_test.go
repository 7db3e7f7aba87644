package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-planner-api/internal/domain"
)

func TestStorageErr_NumericOverflow(t *testing.T) {
	err := storageErr("update product stock", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}

func TestStorageErr_Connection(t *testing.T) {
	err := storageErr("begin transaction", &pgconn.PgError{Code: "08006"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStorageErr_Other(t *testing.T) {
	err := storageErr("insert product", &pgconn.PgError{Code: "42P01"})
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)
}
