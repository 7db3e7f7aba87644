package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-planner-api/internal/application/auth"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/stock-planner-api/pkg/jwt"
)

const secret = "secreto-de-pruebas"

type memUsers struct {
	items []*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(m.items) + 1)
	cp := *u
	m.items = append(m.items, &cp)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) {
	return m.items, nil
}

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: " Bodega1 ", Password: "clave-segura", Role: entity.RoleStockOutManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "bodega1", user.Username)
	assert.Equal(t, "bodega1", user.Name, "nombre por defecto")
	assert.NotEqual(t, "clave-segura", repo.items[0].PasswordHash)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "BODEGA1", Password: "clave-segura"})
	require.NoError(t, err)
	id, username, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "bodega1", username)
	assert.Equal(t, entity.RoleStockOutManager, role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "clave-segura", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ANA", Password: "otra-clave", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "luis", Password: "clave-segura", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "clave-segura", Role: entity.RoleInventoryHandler})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.items[0].IsActive = false
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
