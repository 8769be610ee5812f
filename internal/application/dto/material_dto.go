package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Unit            string          `json:"unit" validate:"required,max=30"`
	Category        string          `json:"category" validate:"required"` // DRY | WET
	MinStock        decimal.Decimal `json:"min_stock"`
	MainSupplier    *string         `json:"main_supplier,omitempty"`
	StorageLocation *string         `json:"storage_location,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id (campos opcionales).
// CurrentStock no se modifica aquí: solo vía recepciones, salidas, ajustes y conteos.
type UpdateMaterialRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Unit            *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=30"`
	Category        *string          `json:"category,omitempty"`
	MinStock        *decimal.Decimal `json:"min_stock,omitempty"`
	MainSupplier    *string          `json:"main_supplier,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// MaterialListQuery filtros de GET /api/materials.
type MaterialListQuery struct {
	Category   string `query:"category"`
	Search     string `query:"search"`
	ActiveOnly bool   `query:"active"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	Category        string          `json:"category"`
	MinStock        decimal.Decimal `json:"min_stock"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	MainSupplier    *string         `json:"main_supplier,omitempty"`
	StorageLocation *string         `json:"storage_location,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
