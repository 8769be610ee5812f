package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// IdempotencyRepository guarda el resultado de operaciones con Idempotency-Key.
type IdempotencyRepository interface {
	// Get devuelve el registro ya confirmado. nil si la clave no existe.
	Get(ctx context.Context, key, scope string) (*entity.IdempotencyRecord, error)
	// Save registra la clave; una clave repetida devuelve domain.ErrDuplicate.
	Save(ctx context.Context, rec *entity.IdempotencyRecord) error
}
