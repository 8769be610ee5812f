package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Issue salida de materiales hacia un departamento de cocina.
type Issue struct {
	ID          string
	IssueDate   time.Time
	Department  string
	Notes       *string
	CreatedByID string
	CreatedAt   time.Time
	Items       []*IssueItem
}

// IssueItem línea de una salida.
type IssueItem struct {
	ID               string
	IssueID          string
	MaterialID       string
	Quantity         decimal.Decimal
	Unit             string
	UsageNote        *string
	PhotoMaterialURL *string
}
