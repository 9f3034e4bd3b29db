package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/consultoria-pro/internal/application/dto"
	"github.com/tu-usuario/consultoria-pro/internal/application/usecase"
	"github.com/tu-usuario/consultoria-pro/internal/domain"
	"github.com/tu-usuario/consultoria-pro/internal/testutil"
	"github.com/tu-usuario/consultoria-pro/pkg/clock"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// spyCascader registra las cascadas invocadas.
type spyCascader struct {
	byUser, byCompany, byProject []string
}

func (s *spyCascader) DeactivateByUser(ctx context.Context, id string) error {
	s.byUser = append(s.byUser, id)
	return nil
}
func (s *spyCascader) DeactivateByCompany(ctx context.Context, id string) error {
	s.byCompany = append(s.byCompany, id)
	return nil
}
func (s *spyCascader) DeactivateByProject(ctx context.Context, id string) error {
	s.byProject = append(s.byProject, id)
	return nil
}

func createReq(id, email string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		ID: id, Name: "Ana Pérez", Email: email, Password: "secreta", Role: "consultor",
	}
}

func TestUserCreate(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, &spyCascader{}, clock.Fixed(fixedNow))

	out, err := uc.Create(createReq("U1", "ana@acme.com"))
	require.NoError(t, err)
	assert.Equal(t, "U1", out.ID, "el id lo asigna el administrador, no se genera")
	assert.True(t, out.IsActive)
	assert.Equal(t, fixedNow, out.CreatedAt)

	stored := repo.Users["U1"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta")))
}

func TestUserCreate_Duplicados(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, &spyCascader{}, clock.Fixed(fixedNow))

	_, err := uc.Create(createReq("U1", "ana@acme.com"))
	require.NoError(t, err)

	_, err = uc.Create(createReq("U1", "otra@acme.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "id repetido")

	_, err = uc.Create(createReq("U2", "ana@acme.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "email repetido")
}

// Desactivar un usuario dispara la cascada sobre sus asignaciones.
func TestUserDeactivate_Cascada(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	spy := &spyCascader{}
	uc := usecase.NewUserUseCase(repo, spy, clock.Fixed(fixedNow))

	_, err := uc.Create(createReq("U1", "ana@acme.com"))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), "U1"))
	assert.False(t, repo.Users["U1"].IsActive)
	assert.Equal(t, []string{"U1"}, spy.byUser)

	err = uc.Deactivate(context.Background(), "U9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdate_ParcheParcial(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	uc := usecase.NewUserUseCase(repo, &spyCascader{}, clock.Fixed(fixedNow))

	_, err := uc.Create(createReq("U1", "ana@acme.com"))
	require.NoError(t, err)

	nuevo := "Ana P. García"
	out, err := uc.Update("U1", dto.UpdateUserRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, nuevo, out.Name)
	assert.Equal(t, "ana@acme.com", out.Email, "los campos no incluidos no cambian")

	_, err = uc.Update("U9", dto.UpdateUserRequest{Name: &nuevo})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
