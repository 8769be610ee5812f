package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/pkg/config"
)

var fixedNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store      *memStore
	notifier   *countingNotifier
	receiving  *ReceivingUseCase
	issue      *IssueUseCase
	adjustment *AdjustmentUseCase
	opname     *OpnameUseCase
	stock      *StockUseCase
}

func newFixture(t *testing.T, policy string) *fixture {
	t.Helper()
	if policy == "" {
		policy = config.LotPolicyAggregate
	}
	store := newMemStore()
	n := &countingNotifier{}
	read := store.read()
	f := &fixture{
		store:      store,
		notifier:   n,
		receiving:  NewReceivingUseCase(store, read.Receivings, n),
		issue:      NewIssueUseCase(store, n),
		adjustment: NewAdjustmentUseCase(store, n, policy),
		opname:     NewOpnameUseCase(store, read.Opnames, n),
		stock:      NewStockUseCase(read.Materials, read.Transactions),
	}
	clock := func() time.Time { return fixedNow }
	f.receiving.clock = clock
	f.issue.clock = clock
	f.adjustment.clock = clock
	f.opname.clock = clock
	return f
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (f *fixture) material(id, name, category, unit, min string) *entity.Material {
	m := &entity.Material{
		ID:           id,
		Name:         name,
		Unit:         unit,
		Category:     category,
		MinStock:     dec(min),
		CurrentStock: decimal.Zero,
		IsActive:     true,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
	f.store.addMaterial(m)
	return m
}

// seedLot agrega un lote y suma al agregado sin pasar por la recepción.
func (f *fixture) seedLot(materialID, lotID, qty string, expiry *time.Time, receivedAt time.Time) {
	f.store.addLot(&entity.StockLot{
		ID:                lotID,
		MaterialID:        materialID,
		QuantityInitial:   dec(qty),
		QuantityRemaining: dec(qty),
		Unit:              "kg",
		ExpiryDate:        expiry,
		Status:            entity.LotStatusActive,
		ReceivedAt:        receivedAt,
	})
	m := f.store.material(materialID)
	m.CurrentStock = m.CurrentStock.Add(dec(qty))
	f.store.addMaterial(m)
}

func (f *fixture) receive(t *testing.T, materialID, unit, qty string, expiry *time.Time) *dto.ReceivingResponse {
	t.Helper()
	item := dto.ReceivingItemRequest{
		MaterialID:       materialID,
		QuantityReceived: dec(qty),
		Unit:             unit,
	}
	if expiry != nil {
		d := dto.NewDate(*expiry)
		item.Inspection.ExpiryDate = &d
	}
	out, err := f.receiving.Create(context.Background(), "user-1", "", dto.CreateReceivingRequest{
		SupplierName: "PT Sumber Pangan",
		ReceiverName: "Budi",
		Items:        []dto.ReceivingItemRequest{item},
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	return out
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}
