package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// ExpiringLot lote próximo a vencer con datos del material.
type ExpiringLot struct {
	LotID             string
	MaterialID        string
	MaterialName      string
	QuantityRemaining decimal.Decimal
	Unit              string
	ExpiryDate        time.Time
}

// MaterialQuantity suma de cantidades por material en un período.
type MaterialQuantity struct {
	MaterialID   string
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
}

// PurchaseRow línea aceptada de una recepción.
type PurchaseRow struct {
	ReceivedAt       time.Time
	ReceivingNumber  string
	SupplierName     string
	MaterialName     string
	Category         string
	QuantityAccepted decimal.Decimal
	Unit             string
}

// WasteRow transacción WASTE con material y responsable.
type WasteRow struct {
	CreatedAt    time.Time
	MaterialName string
	Quantity     decimal.Decimal
	Unit         string
	UserName     string
}

// StockQueryRepository consultas de solo lectura para tablero y reportes.
type StockQueryRepository interface {
	// TotalsByCategory suma currentStock de materiales activos por categoría.
	TotalsByCategory(ctx context.Context) (dry, wet decimal.Decimal, err error)
	// LowStock materiales activos con currentStock <= minStock, ascendente por stock.
	LowStock(ctx context.Context, limit int) ([]*entity.Material, error)
	// ExpiringLots lotes ACTIVE con vencimiento en [from, until], ascendente.
	ExpiringLots(ctx context.Context, from, until time.Time, limit int) ([]ExpiringLot, error)
	// SumByType suma transacciones del tipo desde since, agrupadas por material, descendente.
	SumByType(ctx context.Context, txType string, since time.Time) ([]MaterialQuantity, error)
	PurchaseRows(ctx context.Context, start, end time.Time) ([]PurchaseRow, error)
	WasteRows(ctx context.Context, start, end time.Time) ([]WasteRow, error)
}
