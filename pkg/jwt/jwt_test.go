package jwt_test

import (
	"testing"

	"github.com/jhoicas/stock-planner-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secret", 42, "ana", "stock_in_manager", "test", 5)
	require.NoError(t, err)

	userID, username, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "ana", username)
	assert.Equal(t, "stock_in_manager", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", 1, "ana", "super_admin", "test", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secret", 1, "ana", "super_admin", "test", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", 1, "ana", "super_admin", "test", 5)
	assert.Error(t, err)
}
