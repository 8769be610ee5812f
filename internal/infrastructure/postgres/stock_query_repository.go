package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.StockQueryRepository = (*StockQueryRepo)(nil)

// StockQueryRepo consultas de solo lectura para tablero y reportes.
type StockQueryRepo struct {
	pool *pgxpool.Pool
}

// NewStockQueryRepository construye el adaptador de consultas.
func NewStockQueryRepository(pool *pgxpool.Pool) *StockQueryRepo {
	return &StockQueryRepo{pool: pool}
}

// TotalsByCategory suma current_stock de materiales activos por categoría.
func (r *StockQueryRepo) TotalsByCategory(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
	SELECT
	    COALESCE(SUM(current_stock) FILTER (WHERE category = 'DRY'), 0) AS total_dry,
	    COALESCE(SUM(current_stock) FILTER (WHERE category = 'WET'), 0) AS total_wet
	FROM materials
	WHERE is_active`
	var dry, wet decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&dry, &wet); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("stock.TotalsByCategory: %w", err)
	}
	return dry, wet, nil
}

// LowStock materiales activos en o bajo su mínimo, los más críticos primero.
func (r *StockQueryRepo) LowStock(ctx context.Context, limit int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + `
	FROM materials
	WHERE is_active AND current_stock <= min_stock
	ORDER BY current_stock ASC, name ASC
	LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("stock.LowStock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("stock.LowStock scan: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ExpiringLots lotes ACTIVE con vencimiento en [from, until].
func (r *StockQueryRepo) ExpiringLots(ctx context.Context, from, until time.Time, limit int) ([]repository.ExpiringLot, error) {
	const query = `
	SELECT l.id, l.material_id, m.name, l.quantity_remaining, l.unit, l.expiry_date
	FROM stock_lots l
	JOIN materials m ON m.id = l.material_id
	WHERE l.status = 'ACTIVE'
	  AND l.quantity_remaining > 0
	  AND l.expiry_date BETWEEN $1::date AND $2::date
	ORDER BY l.expiry_date ASC, l.received_at ASC
	LIMIT $3`
	rows, err := r.pool.Query(ctx, query, from, until, limit)
	if err != nil {
		return nil, fmt.Errorf("stock.ExpiringLots: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringLot
	for rows.Next() {
		var l repository.ExpiringLot
		if err := rows.Scan(&l.LotID, &l.MaterialID, &l.MaterialName, &l.QuantityRemaining, &l.Unit, &l.ExpiryDate); err != nil {
			return nil, fmt.Errorf("stock.ExpiringLots scan: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// SumByType total por material de un tipo de movimiento desde since, mayor primero.
func (r *StockQueryRepo) SumByType(ctx context.Context, txType string, since time.Time) ([]repository.MaterialQuantity, error) {
	const query = `
	SELECT t.material_id, m.name, m.unit, SUM(t.quantity) AS total
	FROM stock_transactions t
	JOIN materials m ON m.id = t.material_id
	WHERE t.type = $1 AND t.created_at >= $2
	GROUP BY t.material_id, m.name, m.unit
	ORDER BY total DESC, m.name ASC`
	rows, err := r.pool.Query(ctx, query, txType, since)
	if err != nil {
		return nil, fmt.Errorf("stock.SumByType: %w", err)
	}
	defer rows.Close()
	var list []repository.MaterialQuantity
	for rows.Next() {
		var q repository.MaterialQuantity
		if err := rows.Scan(&q.MaterialID, &q.MaterialName, &q.Unit, &q.Quantity); err != nil {
			return nil, fmt.Errorf("stock.SumByType scan: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// PurchaseRows líneas aceptadas de recepciones en [start, end].
func (r *StockQueryRepo) PurchaseRows(ctx context.Context, start, end time.Time) ([]repository.PurchaseRow, error) {
	const query = `
	SELECT rc.received_at, rc.number, rc.supplier_name, m.name, m.category, ri.quantity_accepted, ri.unit
	FROM receiving_items ri
	JOIN receivings rc ON rc.id = ri.receiving_id
	JOIN materials  m  ON m.id  = ri.material_id
	WHERE rc.received_at BETWEEN $1 AND $2
	  AND ri.quantity_accepted > 0
	ORDER BY rc.received_at ASC, rc.number ASC, m.name ASC`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("stock.PurchaseRows: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchaseRow
	for rows.Next() {
		var p repository.PurchaseRow
		if err := rows.Scan(&p.ReceivedAt, &p.ReceivingNumber, &p.SupplierName, &p.MaterialName, &p.Category, &p.QuantityAccepted, &p.Unit); err != nil {
			return nil, fmt.Errorf("stock.PurchaseRows scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// WasteRows transacciones WASTE en [start, end] con el usuario que las registró.
func (r *StockQueryRepo) WasteRows(ctx context.Context, start, end time.Time) ([]repository.WasteRow, error) {
	const query = `
	SELECT t.created_at, m.name, t.quantity, t.unit, u.name
	FROM stock_transactions t
	JOIN materials m ON m.id = t.material_id
	LEFT JOIN users u ON u.id = t.user_id
	WHERE t.type = 'WASTE' AND t.created_at BETWEEN $1 AND $2
	ORDER BY t.created_at ASC, t.seq ASC`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("stock.WasteRows: %w", err)
	}
	defer rows.Close()
	var list []repository.WasteRow
	for rows.Next() {
		var (
			w    repository.WasteRow
			user *string
		)
		if err := rows.Scan(&w.CreatedAt, &w.MaterialName, &w.Quantity, &w.Unit, &user); err != nil {
			return nil, fmt.Errorf("stock.WasteRows scan: %w", err)
		}
		w.UserName = emptyIfNull(user)
		list = append(list, w)
	}
	return list, rows.Err()
}
