package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// StockOpnameRepository puerto de conteos físicos.
type StockOpnameRepository interface {
	Create(ctx context.Context, o *entity.StockOpname) error
	CreateItem(ctx context.Context, item *entity.StockOpnameItem) error
	// GetByID devuelve el conteo con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.StockOpname, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockOpname, error)
}
