package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

func newUserUC() (*UserUseCase, *fakeUsers) {
	repo := newFakeUsers()
	uc := NewUserUseCase(repo)
	uc.cost = bcrypt.MinCost
	return uc, repo
}

func TestUserCreate_NormalizaEmailYHashea(t *testing.T) {
	uc, repo := newUserUC()

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name: "Siti", Email: "  Siti@Gudang.Local ", Password: "rahasia123", Role: entity.RoleWarehouse,
	})
	require.NoError(t, err)
	assert.Equal(t, "siti@gudang.local", out.Email)
	assert.True(t, out.IsActive)

	stored := repo.byID[out.ID]
	assert.NotEqual(t, "rahasia123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia123")))

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{
		Name: "Otra", Email: "SITI@gudang.local", Password: "rahasia123", Role: entity.RoleWarehouse,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc, _ := newUserUC()
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "X", Email: "x@y.z", Password: "12345678", Role: "CASHIER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_Desactiva(t *testing.T) {
	uc, _ := newUserUC()
	u, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "Andi", Email: "andi@gudang.local", Password: "rahasia123", Role: entity.RoleHeadChef})
	require.NoError(t, err)

	off := false
	role := entity.RoleWarehouse
	out, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{IsActive: &off, Role: &role})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Equal(t, entity.RoleWarehouse, out.Role)

	_, err = uc.Update(context.Background(), "ghost", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureAdmin_SoloUnaVez(t *testing.T) {
	uc, repo := newUserUC()

	created, err := uc.EnsureAdmin(context.Background(), "Administrator", "admin@gudang.local", "Admin123!")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(context.Background(), "Administrator", "ADMIN@gudang.local", "Admin123!")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.byID, 1)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.RoleAdmin, list[0].Role)
}
