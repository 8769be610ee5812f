package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "ADMIN"
	RoleWarehouse = "WAREHOUSE"
	RoleHeadChef  = "HEAD_CHEF"
)

// IsValidRole indica si el rol existe.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleWarehouse || r == RoleHeadChef
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
