package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.StockOpnameRepository = (*StockOpnameRepo)(nil)

// StockOpnameRepo conteos físicos sobre PostgreSQL.
type StockOpnameRepo struct {
	q Querier
}

// NewStockOpnameRepository construye el adaptador.
func NewStockOpnameRepository(q Querier) *StockOpnameRepo {
	return &StockOpnameRepo{q: q}
}

func (r *StockOpnameRepo) Create(ctx context.Context, o *entity.StockOpname) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_opnames (id, opname_date, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.OpnameDate, o.Notes, o.CreatedByID, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock opname: %w", err)
	}
	return nil
}

func (r *StockOpnameRepo) CreateItem(ctx context.Context, item *entity.StockOpnameItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_opname_items (id, stock_opname_id, material_id, system_quantity, physical_quantity, difference, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.StockOpnameID, item.MaterialID, item.SystemQuantity, item.PhysicalQuantity, item.Difference, item.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert stock opname item: %w", err)
	}
	return nil
}

// GetByID conteo con sus líneas. nil si no existe.
func (r *StockOpnameRepo) GetByID(ctx context.Context, id string) (*entity.StockOpname, error) {
	o, err := scanOpname(r.q.QueryRow(ctx, `
		SELECT id, opname_date, notes, created_by, created_at FROM stock_opnames WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock opname: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, stock_opname_id, material_id, system_quantity, physical_quantity, difference, reason
		FROM stock_opname_items WHERE stock_opname_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list stock opname items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StockOpnameItem
		if err := rows.Scan(
			&it.ID, &it.StockOpnameID, &it.MaterialID, &it.SystemQuantity, &it.PhysicalQuantity, &it.Difference, &it.Reason,
		); err != nil {
			return nil, fmt.Errorf("scan stock opname item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	return o, rows.Err()
}

// List conteos sin líneas, más recientes primero.
func (r *StockOpnameRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockOpname, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, opname_date, notes, created_by, created_at
		FROM stock_opnames ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock opnames: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockOpname
	for rows.Next() {
		o, err := scanOpname(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock opname: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOpname(row pgx.Row) (*entity.StockOpname, error) {
	var o entity.StockOpname
	if err := row.Scan(&o.ID, &o.OpnameDate, &o.Notes, &o.CreatedByID, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
