package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
)

// QuantityScale decimales que persiste el store (NUMERIC(18,4)). Una cantidad con más decimales
// se redondearía fila por fila y el agregado dejaría de coincidir con la suma de lotes.
const QuantityScale = 4

// FitsScale indica si q se representa sin redondeo con QuantityScale decimales.
func FitsScale(q decimal.Decimal) bool {
	return q.Equal(q.Round(QuantityScale))
}

// ValidatePositive exige q > 0 y como máximo QuantityScale decimales.
func ValidatePositive(field string, q decimal.Decimal) error {
	if !q.GreaterThan(decimal.Zero) {
		return domain.NewValidationError(field, "debe ser mayor a cero")
	}
	return validateScale(field, q)
}

// ValidateNonNegative exige q >= 0 y como máximo QuantityScale decimales.
func ValidateNonNegative(field string, q decimal.Decimal) error {
	if q.IsNegative() {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	return validateScale(field, q)
}

func validateScale(field string, q decimal.Decimal) error {
	if !FitsScale(q) {
		return domain.NewValidationError(field, fmt.Sprintf("admite como máximo %d decimales", QuantityScale))
	}
	return nil
}
