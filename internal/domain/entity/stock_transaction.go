package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del log de transacciones.
const (
	TransactionTypeIN          = "IN"
	TransactionTypeOUT         = "OUT"
	TransactionTypeWASTE       = "WASTE"
	TransactionTypeRETURN      = "RETURN"
	TransactionTypeADJUSTMENT  = "ADJUSTMENT"
	TransactionTypeSTOCKOPNAME = "STOCK_OPNAME"
)

// StockTransaction registro inmutable de un movimiento de stock. Quantity siempre es magnitud positiva.
// Seq lo asigna el store al insertar y desempata movimientos con el mismo CreatedAt.
type StockTransaction struct {
	ID          string
	Seq         int64
	MaterialID  string
	Type        string
	Quantity    decimal.Decimal
	Unit        string
	Department  *string
	Reference   string
	UserID      string
	StockLotID  *string
	IssueItemID *string
	CreatedAt   time.Time
}
