package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// IssueRepository puerto de salidas a cocina.
type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	CreateItem(ctx context.Context, item *entity.IssueItem) error
	// GetByID devuelve la salida con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Issue, error)
}
