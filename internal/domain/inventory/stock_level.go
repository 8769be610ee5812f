package inventory

import "github.com/shopspring/decimal"

// Niveles de semáforo de stock.
const (
	LevelRed    = "RED"
	LevelYellow = "YELLOW"
	LevelGreen  = "GREEN"
)

var yellowFactor = decimal.NewFromFloat(1.5)

// StockLevel clasifica el stock actual frente al mínimo:
// RED sin stock o bajo el mínimo, YELLOW hasta 1.5x el mínimo, GREEN por encima.
func StockLevel(current, minStock decimal.Decimal) string {
	if current.LessThanOrEqual(decimal.Zero) || current.LessThan(minStock) {
		return LevelRed
	}
	if current.LessThanOrEqual(minStock.Mul(yellowFactor)) {
		return LevelYellow
	}
	return LevelGreen
}
