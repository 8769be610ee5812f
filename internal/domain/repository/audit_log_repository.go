package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// AuditLogRepository puerto de auditoría (solo inserción).
type AuditLogRepository interface {
	Append(ctx context.Context, log *entity.AuditLog) error
}
