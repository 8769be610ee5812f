package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMaterialResponse material con su semáforo de stock.
type StockMaterialResponse struct {
	MaterialResponse
	Level string `json:"level"` // GREEN | YELLOW | RED
}

// TransactionResponse movimiento del log de transacciones.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Department  *string         `json:"department,omitempty"`
	Reference   string          `json:"reference"`
	UserID      string          `json:"user_id"`
	StockLotID  *string         `json:"stock_lot_id,omitempty"`
	IssueItemID *string         `json:"issue_item_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementsResponse historial de un material.
type MovementsResponse struct {
	Material     MaterialResponse      `json:"material"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ExpiringLotDTO lote próximo a vencer.
type ExpiringLotDTO struct {
	LotID             string          `json:"lot_id"`
	MaterialID        string          `json:"material_id"`
	MaterialName      string          `json:"material_name"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	Unit              string          `json:"unit"`
	ExpiryDate        Date            `json:"expiry_date"`
}

// MaterialQuantityDTO suma por material en un período.
type MaterialQuantityDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// DashboardResponse resumen del tablero de stock.
type DashboardResponse struct {
	TotalDry      decimal.Decimal         `json:"total_dry"`
	TotalWet      decimal.Decimal         `json:"total_wet"`
	LowStock      []StockMaterialResponse `json:"low_stock"`
	NearlyExpired []ExpiringLotDTO        `json:"nearly_expired"`
	Usage         []MaterialQuantityDTO   `json:"usage_30d"`
	Purchases     []MaterialQuantityDTO   `json:"purchases_30d"`
	Waste         []MaterialQuantityDTO   `json:"waste_30d"`
	Returns       []MaterialQuantityDTO   `json:"returns_30d"`
	GeneratedAt   time.Time               `json:"generated_at"`
}
