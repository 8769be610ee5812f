package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// ReceivingRepository puerto de recepciones de mercancía.
type ReceivingRepository interface {
	// NextNumber genera el siguiente número RCV-YYYYMMDD-NNN del día; debe llamarse dentro de la tx.
	NextNumber(ctx context.Context, day time.Time) (string, error)
	Create(ctx context.Context, r *entity.Receiving) error
	// CreateItem inserta la línea y su inspección.
	CreateItem(ctx context.Context, item *entity.ReceivingItem) error
	// GetByID devuelve la recepción con líneas e inspecciones, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Receiving, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Receiving, error)
}
