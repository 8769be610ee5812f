package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// MaterialFilter filtros del listado de materiales.
type MaterialFilter struct {
	Category   string // vacío = todas
	ActiveOnly bool
	Search     string // coincidencia parcial en nombre
}

// MaterialRepository puerto de persistencia del registro de materiales.
// GetByID y GetForUpdate devuelven (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error
}
