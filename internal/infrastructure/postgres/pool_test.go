package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/pkg/config"
)

func TestApplyPoolSettings(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/db?sslmode=disable")
	require.NoError(t, err)

	applyPoolSettings(pc, config.DBConfig{
		MaxConns: 8, MinConns: 2, MaxConnLifetime: 30, MaxConnIdleTime: 5,
	})

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotEqual(t, reflect.ValueOf(dialIPv4).Pointer(), reflect.ValueOf(pc.ConnConfig.DialFunc).Pointer())
}

func TestApplyPoolSettings_ForceIPv4(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@db.internal:5432/db")
	require.NoError(t, err)

	applyPoolSettings(pc, config.DBConfig{MaxConns: 4, ForceIPv4: true})

	assert.Equal(t, reflect.ValueOf(dialIPv4).Pointer(), reflect.ValueOf(pc.ConnConfig.DialFunc).Pointer())
}
