package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/pkg/jwt"
)

type usersStub struct {
	users []*entity.User
}

func (s *usersStub) Create(context.Context, *entity.User) error { return nil }
func (s *usersStub) Update(context.Context, *entity.User) error { return nil }
func (s *usersStub) List(context.Context) ([]*entity.User, error) {
	return s.users, nil
}

func (s *usersStub) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *usersStub) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &usersStub{users: []*entity.User{
		{ID: "u-1", Name: "Admin", Email: "admin@gudang.local", PasswordHash: string(hash), Role: entity.RoleAdmin, IsActive: true},
		{ID: "u-2", Name: "Ex", Email: "ex@gudang.local", PasswordHash: string(hash), Role: entity.RoleWarehouse, IsActive: false},
	}}
	return NewAuthUseCase(repo, JWTConfig{Secret: "test-secret", ExpMinutes: 720, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ADMIN@gudang.local", Password: "Admin123!"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.User.ID)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), out.ExpiresAt, time.Minute)

	id, err := jwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "Admin", id.Name)
	assert.Equal(t, entity.RoleAdmin, id.Role)
}

func TestLogin_MismoErrorParaTodoFallo(t *testing.T) {
	uc := newAuth(t)
	cases := []dto.LoginRequest{
		{Email: "admin@gudang.local", Password: "wrong"},
		{Email: "nobody@gudang.local", Password: "Admin123!"},
		{Email: "ex@gudang.local", Password: "Admin123!"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Email)
	}
}

func TestMe(t *testing.T) {
	uc := newAuth(t)
	me, err := uc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@gudang.local", me.Email)

	_, err = uc.Me(context.Background(), "u-2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
