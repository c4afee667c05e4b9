package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/auth"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/petshop-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "petshop"})
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Caixa@PetShop.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "caixa@petshop.com", u.Email)
	assert.Equal(t, entity.RoleOperator, u.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "caixa@petshop.com", Password: "otrasenha1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "caixa@petshop.com", Password: "segredo123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleOperator, role)

	me, err := uc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@petshop.com", Password: "segredo123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@petshop.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@petshop.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "segredo123", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	created, err := uc.EnsureAdmin(ctx, "dono@petshop.com", "segredo123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "Dono@PetShop.com", "segredo123")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "dono@petshop.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}
