package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de recepción.
const (
	ReceivingStatusReceived = "RECEIVED"
	ReceivingStatusPartial  = "PARTIAL"
	ReceivingStatusRejected = "REJECTED"
)

// NormalizeReceivingStatus acepta los alias del formulario (DITERIMA, DITERIMA_SEBAGIAN);
// cualquier otro valor se considera rechazado.
func NormalizeReceivingStatus(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case ReceivingStatusReceived, "DITERIMA":
		return ReceivingStatusReceived
	case ReceivingStatusPartial, "DITERIMA_SEBAGIAN":
		return ReceivingStatusPartial
	default:
		return ReceivingStatusRejected
	}
}

// Receiving cabecera de una recepción de proveedor.
type Receiving struct {
	ID             string
	Number         string // RCV-YYYYMMDD-NNN
	ReceivedAt     time.Time
	SupplierName   string
	ReceiverName   string
	InvoiceNumber  *string
	InvoiceFileURL *string
	CreatedByID    string
	CreatedAt      time.Time
	Items          []*ReceivingItem
}

// ReceivingItem línea de recepción; genera como máximo un lote.
type ReceivingItem struct {
	ID               string
	ReceivingID      string
	MaterialID       string
	QuantityReceived decimal.Decimal
	QuantityAccepted decimal.Decimal
	Unit             string
	Status           string
	Inspection       *Inspection
}

// CreatesLot indica si la línea debe crear un lote (aceptada total o parcialmente con cantidad > 0).
func (i *ReceivingItem) CreatesLot() bool {
	if i.Status != ReceivingStatusReceived && i.Status != ReceivingStatusPartial {
		return false
	}
	return i.QuantityAccepted.GreaterThan(decimal.Zero)
}
