package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
)

// CountLine conteo físico de un material frente a la cantidad del sistema.
type CountLine struct {
	MaterialID   string
	MaterialName string
	System       decimal.Decimal
	Physical     decimal.Decimal
	Reason       string
}

// Difference devuelve físico - sistema (con signo).
func (c CountLine) Difference() decimal.Decimal {
	return c.Physical.Sub(c.System)
}

// HasDifference indica si el conteo no cuadra.
func (c CountLine) HasDifference() bool {
	return !c.Difference().IsZero()
}

// ValidateCount exige motivo en toda línea con diferencia. Un solo fallo invalida el lote completo.
func ValidateCount(lines []CountLine) error {
	for _, l := range lines {
		if l.Physical.IsNegative() {
			return domain.NewValidationError("physical_quantity", "la cantidad física no puede ser negativa")
		}
		if l.HasDifference() && strings.TrimSpace(l.Reason) == "" {
			name := l.MaterialName
			if name == "" {
				name = l.MaterialID
			}
			return domain.NewValidationError("reason", "motivo obligatorio para la diferencia del material "+name)
		}
	}
	return nil
}
