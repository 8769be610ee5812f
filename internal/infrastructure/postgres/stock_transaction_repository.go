package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, seq, material_id, type, quantity, unit, department, reference, user_id, stock_lot_id, issue_item_id, created_at`

// Las filas de una misma operación comparten created_at; seq conserva el orden en que se escribieron.
const (
	insertTransactionQuery = `
		INSERT INTO stock_transactions (id, material_id, type, quantity, unit, department, reference, user_id, stock_lot_id, issue_item_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`
	listTransactionsByMaterialQuery = `SELECT ` + transactionColumns + `
		FROM stock_transactions WHERE material_id = $1
		ORDER BY created_at ASC, seq ASC`
	listTransactionsByIDsQuery = `SELECT ` + transactionColumns + `
		FROM stock_transactions WHERE id = ANY($1::uuid[])
		ORDER BY created_at ASC, seq ASC`
)

// StockTransactionRepo log de movimientos sobre PostgreSQL (pool o tx). Solo inserta y lee.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste un movimiento y completa t.Seq.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, insertTransactionQuery,
		t.ID, t.MaterialID, t.Type, t.Quantity, t.Unit, t.Department, t.Reference, t.UserID,
		t.StockLotID, t.IssueItemID, t.CreatedAt,
	).Scan(&t.Seq)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// ListByMaterial movimientos del material en orden cronológico.
func (r *StockTransactionRepo) ListByMaterial(ctx context.Context, materialID string) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, listTransactionsByMaterialQuery, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	return scanTransactions(rows)
}

// ListByIDs movimientos por ID (respuesta de reintentos idempotentes).
func (r *StockTransactionRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.StockTransaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, listTransactionsByIDsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions by id: %w", err)
	}
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*entity.StockTransaction, error) {
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.Seq, &t.MaterialID, &t.Type, &t.Quantity, &t.Unit, &t.Department, &t.Reference, &t.UserID,
			&t.StockLotID, &t.IssueItemID, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
