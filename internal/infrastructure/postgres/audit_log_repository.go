package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora de auditoría (solo inserción).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta un registro; Details se guarda como JSONB.
func (r *AuditLogRepo) Append(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	var details []byte
	if log.Details != nil {
		raw, err := json.Marshal(log.Details)
		if err != nil {
			return fmt.Errorf("audit details: %w", err)
		}
		details = raw
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.UserID, log.Action, log.Entity, log.EntityID, details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
