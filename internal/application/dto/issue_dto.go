package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIssueRequest body para POST /api/issues.
type CreateIssueRequest struct {
	IssueDate  *time.Time         `json:"issue_date,omitempty"`
	Department string             `json:"department" validate:"required,max=100"`
	Notes      *string            `json:"notes,omitempty"`
	Items      []IssueItemRequest `json:"items" validate:"required,min=1,dive"`
}

// IssueItemRequest línea de salida. Unit vacío = unidad del material.
type IssueItemRequest struct {
	MaterialID       string          `json:"material_id" validate:"required"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit,omitempty"`
	UsageNote        *string         `json:"usage_note,omitempty"`
	PhotoMaterialURL *string         `json:"photo_material_url,omitempty"`
}

// LotAllocationResponse cantidad tomada de un lote.
type LotAllocationResponse struct {
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// IssueResponse salida registrada.
type IssueResponse struct {
	ID          string              `json:"id"`
	IssueDate   time.Time           `json:"issue_date"`
	Department  string              `json:"department"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedByID string              `json:"created_by_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []IssueItemResponse `json:"items"`
	Replayed    bool                `json:"replayed,omitempty"`
}

// IssueItemResponse línea de salida con el detalle FEFO.
type IssueItemResponse struct {
	ID               string                  `json:"id"`
	MaterialID       string                  `json:"material_id"`
	Quantity         decimal.Decimal         `json:"quantity"`
	Unit             string                  `json:"unit"`
	UsageNote        *string                 `json:"usage_note,omitempty"`
	PhotoMaterialURL *string                 `json:"photo_material_url,omitempty"`
	Allocations      []LotAllocationResponse `json:"allocations,omitempty"`
}
