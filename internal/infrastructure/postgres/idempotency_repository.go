package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.IdempotencyRepository = (*IdempotencyRepo)(nil)

// IdempotencyRepo claves de idempotencia (key, scope) → huella del cuerpo e id del resultado.
type IdempotencyRepo struct {
	q Querier
}

// NewIdempotencyRepository construye el adaptador.
func NewIdempotencyRepository(q Querier) *IdempotencyRepo {
	return &IdempotencyRepo{q: q}
}

func (r *IdempotencyRepo) Get(ctx context.Context, key, scope string) (*entity.IdempotencyRecord, error) {
	rec := entity.IdempotencyRecord{Key: key, Scope: scope}
	err := r.q.QueryRow(ctx,
		`SELECT fingerprint, result_id, created_at FROM idempotency_keys WHERE key = $1 AND scope = $2`,
		key, scope,
	).Scan(&rec.Fingerprint, &rec.ResultID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return &rec, nil
}

// Save registra la clave. Una clave concurrente ya confirmada viola la PK y devuelve ErrDuplicate.
func (r *IdempotencyRepo) Save(ctx context.Context, rec *entity.IdempotencyRecord) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO idempotency_keys (key, scope, fingerprint, result_id, created_at) VALUES ($1, $2, $3, $4, now())`,
		rec.Key, rec.Scope, rec.Fingerprint, rec.ResultID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("idempotency key %q: %w", rec.Key, domain.ErrDuplicate)
		}
		return fmt.Errorf("save idempotency key: %w", err)
	}
	return nil
}
