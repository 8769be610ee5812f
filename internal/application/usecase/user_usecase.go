package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (administración y seed).
type UserUseCase struct {
	repo repository.UserRepository
	cost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, cost: bcrypt.DefaultCost}
}

// List devuelve todos los usuarios ordenados por nombre.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserFromEntity(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.UserFromEntity(u)
	return &out, nil
}

// Create crea un usuario activo: email en minúsculas, password con bcrypt. Email repetido = ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "el email es obligatorio")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "mínimo 8 caracteres")
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(u)
	return &out, nil
}

// Update modifica nombre, rol, password o estado.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre no puede quedar vacío")
		}
		u.Name = name
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.NewValidationError("role", "rol inválido")
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.NewValidationError("password", "mínimo 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(u)
	return &out, nil
}

// EnsureAdmin crea el administrador inicial si el email no existe. Devuelve true si lo creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := uc.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: name, Email: email, Password: password, Role: entity.RoleAdmin})
	if err != nil {
		return false, err
	}
	return true, nil
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
