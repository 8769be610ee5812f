package dto

import "github.com/shopspring/decimal"

// AdjustmentRequest body para POST /api/stock/adjustments.
// Type: ADJUSTMENT (defecto) | WASTE | RETURN. Direction: OUT (defecto) | IN.
type AdjustmentRequest struct {
	MaterialID   string          `json:"material_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"required"`
	Type         string          `json:"type,omitempty"`
	Direction    string          `json:"direction,omitempty"`
	Reason       string          `json:"reason" validate:"required,max=500"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	PhotoURLs    []string        `json:"photo_urls,omitempty" validate:"omitempty,dive,url"`
}

// AdjustmentResponse resultado del ajuste con el material actualizado.
type AdjustmentResponse struct {
	Type           string           `json:"type"`
	Direction      string           `json:"direction"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Material       MaterialResponse `json:"material"`
	TransactionIDs []string         `json:"transaction_ids,omitempty"`
	Replayed       bool             `json:"replayed,omitempty"`
}
