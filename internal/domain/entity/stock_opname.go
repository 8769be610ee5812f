package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOpname evento de conteo físico.
type StockOpname struct {
	ID          string
	OpnameDate  time.Time
	Notes       *string
	CreatedByID string
	CreatedAt   time.Time
	Items       []*StockOpnameItem
}

// StockOpnameItem conteo de un material. Difference = Physical - System.
type StockOpnameItem struct {
	ID               string
	StockOpnameID    string
	MaterialID       string
	SystemQuantity   decimal.Decimal
	PhysicalQuantity decimal.Decimal
	Difference       decimal.Decimal
	Reason           *string
}
