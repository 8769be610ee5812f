package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOpnameRequest body para POST /api/opname.
type CreateOpnameRequest struct {
	OpnameDate *time.Time          `json:"opname_date,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
	Items      []OpnameItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OpnameItemRequest conteo físico de un material. Reason es obligatorio si hay diferencia.
type OpnameItemRequest struct {
	MaterialID       string          `json:"material_id" validate:"required"`
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Reason           string          `json:"reason,omitempty"`
}

// OpnameResponse conteo registrado.
type OpnameResponse struct {
	ID          string               `json:"id"`
	OpnameDate  time.Time            `json:"opname_date"`
	Notes       *string              `json:"notes,omitempty"`
	CreatedByID string               `json:"created_by_id"`
	CreatedAt   time.Time            `json:"created_at"`
	Items       []OpnameItemResponse `json:"items,omitempty"`
	Replayed    bool                 `json:"replayed,omitempty"`
}

// OpnameItemResponse línea del conteo.
type OpnameItemResponse struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	SystemQuantity   decimal.Decimal `json:"system_quantity"`
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	Reason           *string         `json:"reason,omitempty"`
}
