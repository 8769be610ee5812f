package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de material.
const (
	CategoryDry = "DRY" // bahan kering: granos, enlatados, especias
	CategoryWet = "WET" // bahan basah: carnes, pescados, vegetales
)

// IsValidCategory indica si la categoría es DRY o WET.
func IsValidCategory(c string) bool {
	return c == CategoryDry || c == CategoryWet
}

// Material representa un ítem rastreable del almacén.
// CurrentStock es el agregado denormalizado: debe igualar la suma de QuantityRemaining de sus lotes ACTIVE.
type Material struct {
	ID              string
	Name            string
	Unit            string
	Category        string
	MinStock        decimal.Decimal
	CurrentStock    decimal.Decimal
	MainSupplier    *string
	StorageLocation *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el material activo está en o por debajo de su mínimo.
func (m *Material) IsLowStock() bool {
	return m.IsActive && m.CurrentStock.LessThanOrEqual(m.MinStock)
}
