package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// StockLotRepository puerto del libro de lotes.
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	// ListActiveForUpdate devuelve los lotes ACTIVE con remanente del material en orden FEFO,
	// bloqueados para update.
	ListActiveForUpdate(ctx context.Context, materialID string) ([]*entity.StockLot, error)
	// UpdateRemaining persiste remanente y estado del lote.
	UpdateRemaining(ctx context.Context, lot *entity.StockLot) error
}
