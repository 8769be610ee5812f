package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo lotes de stock sobre PostgreSQL (pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador.
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

// Create inserta un lote.
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, material_id, receiving_item_id, quantity_initial, quantity_remaining, unit, expiry_date, status, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.MaterialID, lot.ReceivingItemID, lot.QuantityInitial, lot.QuantityRemaining,
		lot.Unit, lot.ExpiryDate, lot.Status, lot.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

const activeLotsForUpdateQuery = `
	SELECT id, material_id, receiving_item_id, quantity_initial, quantity_remaining, unit, expiry_date, status, received_at
	FROM stock_lots
	WHERE material_id = $1 AND status = 'ACTIVE' AND quantity_remaining > 0
	ORDER BY expiry_date ASC NULLS LAST, received_at ASC, id ASC
	FOR UPDATE`

// ListActiveForUpdate lotes ACTIVE con remanente, en orden FEFO y bloqueados hasta el fin de la tx.
func (r *StockLotRepo) ListActiveForUpdate(ctx context.Context, materialID string) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(ctx, activeLotsForUpdateQuery, materialID)
	if err != nil {
		return nil, fmt.Errorf("list active lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLot
	for rows.Next() {
		var l entity.StockLot
		if err := rows.Scan(
			&l.ID, &l.MaterialID, &l.ReceivingItemID, &l.QuantityInitial, &l.QuantityRemaining,
			&l.Unit, &l.ExpiryDate, &l.Status, &l.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateRemaining persiste remanente y estado del lote.
func (r *StockLotRepo) UpdateRemaining(ctx context.Context, lot *entity.StockLot) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_lots SET quantity_remaining = $2, status = $3 WHERE id = $1`,
		lot.ID, lot.QuantityRemaining, lot.Status,
	)
	if err != nil {
		return fmt.Errorf("update stock lot: %w", err)
	}
	return nil
}
