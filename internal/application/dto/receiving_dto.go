package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceivingRequest body para POST /api/receivings.
type CreateReceivingRequest struct {
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	SupplierName   string                 `json:"supplier_name" validate:"required,max=200"`
	ReceiverName   string                 `json:"receiver_name" validate:"required,max=200"`
	InvoiceNumber  *string                `json:"invoice_number,omitempty"`
	InvoiceFileURL *string                `json:"invoice_file_url,omitempty" validate:"omitempty,url"`
	Items          []ReceivingItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceivingItemRequest línea de recepción. QuantityAccepted nil = todo lo recibido.
// Status vacío = RECEIVED.
type ReceivingItemRequest struct {
	MaterialID       string            `json:"material_id" validate:"required"`
	QuantityReceived decimal.Decimal   `json:"quantity_received"`
	QuantityAccepted *decimal.Decimal  `json:"quantity_accepted,omitempty"`
	Unit             string            `json:"unit" validate:"required"`
	Status           string            `json:"status,omitempty"`
	Inspection       InspectionRequest `json:"inspection"`
}

// InspectionRequest checklist de inspección. Se envía Wet o Dry según la categoría del material;
// Kind es opcional y si viene debe coincidir con la categoría.
type InspectionRequest struct {
	Kind             string                `json:"kind,omitempty"`
	ExpiryDate       *Date                 `json:"expiry_date,omitempty"`
	PhotoMaterialURL *string               `json:"photo_material_url,omitempty"`
	PhotoFormURL     *string               `json:"photo_form_url,omitempty"`
	Status           string                `json:"status,omitempty"`
	Notes            *string               `json:"notes,omitempty"`
	Wet              *WetInspectionRequest `json:"wet,omitempty"`
	Dry              *DryInspectionRequest `json:"dry,omitempty"`
}

// WetInspectionRequest campos de inspección de material húmedo.
type WetInspectionRequest struct {
	TemperatureC  *decimal.Decimal `json:"temperature_c,omitempty"`
	ColorStatus   string           `json:"color_status,omitempty"`
	AromaStatus   string           `json:"aroma_status,omitempty"`
	TextureStatus string           `json:"texture_status,omitempty"`
}

// DryInspectionRequest campos de inspección de material seco.
type DryInspectionRequest struct {
	PackagingCondition string `json:"packaging_condition,omitempty"`
	HasPest            *bool  `json:"has_pest,omitempty"`
	HumidityCondition  string `json:"humidity_condition,omitempty"`
}

// ReceivingResponse salida de una recepción.
type ReceivingResponse struct {
	ID             string                  `json:"id"`
	Number         string                  `json:"number"`
	ReceivedAt     time.Time               `json:"received_at"`
	SupplierName   string                  `json:"supplier_name"`
	ReceiverName   string                  `json:"receiver_name"`
	InvoiceNumber  *string                 `json:"invoice_number,omitempty"`
	InvoiceFileURL *string                 `json:"invoice_file_url,omitempty"`
	CreatedByID    string                  `json:"created_by_id"`
	CreatedAt      time.Time               `json:"created_at"`
	Items          []ReceivingItemResponse `json:"items,omitempty"`
	Replayed       bool                    `json:"replayed,omitempty"`
}

// ReceivingItemResponse línea de recepción con su inspección y lote generado.
type ReceivingItemResponse struct {
	ID               string              `json:"id"`
	MaterialID       string              `json:"material_id"`
	QuantityReceived decimal.Decimal     `json:"quantity_received"`
	QuantityAccepted decimal.Decimal     `json:"quantity_accepted"`
	Unit             string              `json:"unit"`
	Status           string              `json:"status"`
	LotID            string              `json:"lot_id,omitempty"`
	Inspection       *InspectionResponse `json:"inspection,omitempty"`
}

// InspectionResponse inspección con Details según Kind.
type InspectionResponse struct {
	Kind             string  `json:"kind"`
	Details          any     `json:"details,omitempty"`
	ExpiryDate       *Date   `json:"expiry_date,omitempty"`
	PhotoMaterialURL *string `json:"photo_material_url,omitempty"`
	PhotoFormURL     *string `json:"photo_form_url,omitempty"`
	Status           string  `json:"status,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}
