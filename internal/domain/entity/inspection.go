package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de inspección, uno por categoría de material.
const (
	InspectionKindWet = "WET"
	InspectionKindDry = "DRY"
)

// InspectionDetails es la variante de inspección según la categoría del material.
// Implementada solo por WetInspection y DryInspection.
type InspectionDetails interface {
	Kind() string
	isInspection()
}

// WetInspection checklist para bahan basah.
type WetInspection struct {
	TemperatureC  *decimal.Decimal `json:"temperature_c,omitempty"`
	ColorStatus   string           `json:"color_status,omitempty"`
	AromaStatus   string           `json:"aroma_status,omitempty"`
	TextureStatus string           `json:"texture_status,omitempty"`
}

func (WetInspection) Kind() string  { return InspectionKindWet }
func (WetInspection) isInspection() {}

// DryInspection checklist para bahan kering.
type DryInspection struct {
	PackagingCondition string `json:"packaging_condition,omitempty"`
	HasPest            *bool  `json:"has_pest,omitempty"`
	HumidityCondition  string `json:"humidity_condition,omitempty"`
}

func (DryInspection) Kind() string  { return InspectionKindDry }
func (DryInspection) isInspection() {}

// Inspection resultado de la inspección de una línea de recepción.
type Inspection struct {
	ID               string
	ReceivingItemID  string
	Details          InspectionDetails
	ExpiryDate       *time.Time
	PhotoMaterialURL *string
	PhotoFormURL     *string
	Status           string
	Notes            *string
	CreatedAt        time.Time
}

// IsWet indica si la inspección es de material húmedo.
func (i *Inspection) IsWet() bool {
	return i.Details != nil && i.Details.Kind() == InspectionKindWet
}
