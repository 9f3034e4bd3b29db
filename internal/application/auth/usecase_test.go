package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/consultoria-pro/internal/application/auth"
	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/domain/entity"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/jwt"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *testutil.FakeUserRepo) {
	t.Helper()
	repo := testutil.NewFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.Users["U1"] = &entity.User{
		ID: "U1", Name: "Ana Pérez", Email: "ana@acme.com",
		PasswordHash: string(hash), Role: entity.RoleConsultor, IsActive: true,
	}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "consultoria-pro"})
	return uc, repo
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "U1", out.User.ID)

	userID, role, err := jwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
	assert.Equal(t, entity.RoleConsultor, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un usuario desactivado no entra aunque sus credenciales sean válidas.
func TestLogin_UsuarioDesactivado(t *testing.T) {
	uc, repo := newAuth(t)
	repo.Users["U1"].IsActive = false

	_, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
