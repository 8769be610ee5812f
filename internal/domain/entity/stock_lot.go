package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote.
const (
	LotStatusActive = "ACTIVE"
	LotStatusEmpty  = "EMPTY"
)

// StockLot es un lote de recepción con su propio remanente y vencimiento opcional.
// ReceivingItemID nil indica un lote sintético (ajuste de entrada).
type StockLot struct {
	ID                string
	MaterialID        string
	ReceivingItemID   *string
	QuantityInitial   decimal.Decimal
	QuantityRemaining decimal.Decimal
	Unit              string
	ExpiryDate        *time.Time
	Status            string
	ReceivedAt        time.Time
}

// Take descuenta qty del lote y lo marca EMPTY al agotarse. El caller garantiza qty <= remanente.
func (l *StockLot) Take(qty decimal.Decimal) {
	l.QuantityRemaining = l.QuantityRemaining.Sub(qty)
	if l.QuantityRemaining.LessThanOrEqual(decimal.Zero) {
		l.QuantityRemaining = decimal.Zero
		l.Status = LotStatusEmpty
	}
}

// ExpiresWithin indica si el lote vence dentro de la ventana [now, now+d].
func (l *StockLot) ExpiresWithin(now time.Time, d time.Duration) bool {
	if l.ExpiryDate == nil {
		return false
	}
	return !l.ExpiryDate.Before(now) && !l.ExpiryDate.After(now.Add(d))
}
