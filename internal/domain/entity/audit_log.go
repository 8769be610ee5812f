package entity

import "time"

// Acciones de auditoría.
const (
	AuditActionCreate      = "CREATE"
	AuditActionUpdate      = "UPDATE"
	AuditActionIssue       = "ISSUE"
	AuditActionStockOpname = "STOCK_OPNAME"
)

// AuditLog registro de quién hizo qué sobre qué entidad. Details es un payload opaco (JSONB).
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	Entity    string
	EntityID  string
	Details   map[string]any
	CreatedAt time.Time
}
