package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, unit, category, min_stock, current_stock, main_supplier, storage_location,
	is_active, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, m.Category, m.MinStock, m.CurrentStock, m.MainSupplier, m.StorageLocation,
		m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID. nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

const materialForUpdateQuery = `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`

// GetForUpdate igual que GetByID tomando el lock de fila (solo dentro de una tx).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, materialForUpdateQuery, id)
}

func (r *MaterialRepo) get(ctx context.Context, query, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales ordenados por nombre.
func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, strings.ToUpper(filter.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	query := `SELECT ` + materialColumns + ` FROM materials`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros; current_stock solo cambia vía UpdateStock.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, unit = $3, category = $4, min_stock = $5, main_supplier = $6,
			storage_location = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, m.Category, m.MinStock, m.MainSupplier, m.StorageLocation, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock fija el agregado current_stock.
func (r *MaterialRepo) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE materials SET current_stock = $2, updated_at = now() WHERE id = $1`, id, currentStock)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update material stock: material %s no existe", id)
	}
	return nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(
		&m.ID, &m.Name, &m.Unit, &m.Category, &m.MinStock, &m.CurrentStock, &m.MainSupplier, &m.StorageLocation,
		&m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
