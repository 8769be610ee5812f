package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo salidas de material sobre PostgreSQL.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador.
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

func (r *IssueRepo) Create(ctx context.Context, issue *entity.Issue) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO issues (id, issue_date, department, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		issue.ID, issue.IssueDate, issue.Department, issue.Notes, issue.CreatedByID, issue.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *IssueRepo) CreateItem(ctx context.Context, item *entity.IssueItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO issue_items (id, issue_id, material_id, quantity, unit, usage_note, photo_material_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.IssueID, item.MaterialID, item.Quantity, item.Unit, item.UsageNote, item.PhotoMaterialURL,
	)
	if err != nil {
		return fmt.Errorf("insert issue item: %w", err)
	}
	return nil
}

// GetByID cabecera con líneas. nil si no existe.
func (r *IssueRepo) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.q.QueryRow(ctx, `
		SELECT id, issue_date, department, notes, created_by, created_at
		FROM issues WHERE id = $1`, id).Scan(
		&issue.ID, &issue.IssueDate, &issue.Department, &issue.Notes, &issue.CreatedByID, &issue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, issue_id, material_id, quantity, unit, usage_note, photo_material_url
		FROM issue_items WHERE issue_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list issue items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.IssueItem
		if err := rows.Scan(&it.ID, &it.IssueID, &it.MaterialID, &it.Quantity, &it.Unit, &it.UsageNote, &it.PhotoMaterialURL); err != nil {
			return nil, fmt.Errorf("scan issue item: %w", err)
		}
		issue.Items = append(issue.Items, &it)
	}
	return &issue, rows.Err()
}
