package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

// Allocation cantidad tomada de un lote.
type Allocation struct {
	LotID    string
	Quantity decimal.Decimal
}

// SortFEFO ordena los lotes en sitio: vencimiento ascendente (sin vencimiento al final),
// luego recepción ascendente y por último ID para que el orden sea determinista.
func SortFEFO(lots []*entity.StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		switch {
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		return a.ID < b.ID
	})
}

// AllocateFEFO calcula el plan de consumo de qty sobre los lotes ACTIVE con remanente.
// No modifica los lotes. Si la suma disponible no alcanza devuelve *domain.InsufficientStockError
// y ningún plan: la asignación es todo o nada.
func AllocateFEFO(lots []*entity.StockLot, qty decimal.Decimal) ([]Allocation, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser mayor a cero")
	}

	candidates := make([]*entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.Status == entity.LotStatusActive && l.QuantityRemaining.GreaterThan(decimal.Zero) {
			candidates = append(candidates, l)
		}
	}
	SortFEFO(candidates)

	remaining := qty
	plan := make([]Allocation, 0, len(candidates))
	for _, l := range candidates {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(remaining, l.QuantityRemaining)
		plan = append(plan, Allocation{LotID: l.ID, Quantity: take})
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		available := qty.Sub(remaining)
		return nil, &domain.InsufficientStockError{Requested: qty, Available: available}
	}
	return plan, nil
}

// SumActive suma el remanente de los lotes ACTIVE.
func SumActive(lots []*entity.StockLot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.Status == entity.LotStatusActive {
			total = total.Add(l.QuantityRemaining)
		}
	}
	return total
}
