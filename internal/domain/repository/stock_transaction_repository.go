package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// StockTransactionRepository puerto del log de transacciones (solo inserción).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// ListByMaterial devuelve las transacciones del material por created_at y luego orden de inserción.
	ListByMaterial(ctx context.Context, materialID string) ([]*entity.StockTransaction, error)
	// ListByIDs devuelve las transacciones pedidas en el mismo orden que ListByMaterial.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.StockTransaction, error)
}
