package inventory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

func issueReq(dept string, items ...dto.IssueItemRequest) dto.CreateIssueRequest {
	return dto.CreateIssueRequest{Department: dept, Items: items}
}

func TestIssue_FEFOVaciaPrimeroElLoteQueVenceAntes(t *testing.T) {
	f := newFixture(t, "")
	f.material("milk", "Susu", entity.CategoryWet, "kg", "2")
	f.seedLot("milk", "A", "10", date("2024-02-01"), fixedNow.Add(-48*time.Hour))
	f.seedLot("milk", "B", "10", date("2024-01-15"), fixedNow.Add(-24*time.Hour))

	out, err := f.issue.Issue(context.Background(), "chef-1", "", issueReq("Pastry",
		dto.IssueItemRequest{MaterialID: "milk", Quantity: dec("15")}))
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	allocs := out.Items[0].Allocations
	require.Len(t, allocs, 2)
	assert.Equal(t, "B", allocs[0].LotID)
	assert.True(t, allocs[0].Quantity.Equal(dec("10")))
	assert.Equal(t, "A", allocs[1].LotID)
	assert.True(t, allocs[1].Quantity.Equal(dec("5")))

	lots := map[string]*entity.StockLot{}
	for _, l := range f.store.lotsOf("milk") {
		lots[l.ID] = l
	}
	assert.Equal(t, entity.LotStatusEmpty, lots["B"].Status)
	assert.True(t, lots["B"].QuantityRemaining.IsZero())
	assert.Equal(t, entity.LotStatusActive, lots["A"].Status)
	assert.True(t, lots["A"].QuantityRemaining.Equal(dec("5")))
	assert.True(t, f.store.material("milk").CurrentStock.Equal(dec("5")))

	txs := f.store.transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "B", *txs[0].StockLotID)
	assert.Equal(t, "A", *txs[1].StockLotID)
	for _, tx := range txs {
		assert.Equal(t, entity.TransactionTypeOUT, tx.Type)
		assert.Equal(t, out.ID, tx.Reference)
		require.NotNil(t, tx.Department)
		assert.Equal(t, "Pastry", *tx.Department)
		require.NotNil(t, tx.IssueItemID)
		assert.Equal(t, out.Items[0].ID, *tx.IssueItemID)
	}

	audits := f.store.audits()
	require.Len(t, audits, 1)
	assert.Equal(t, entity.AuditActionIssue, audits[0].Action)
}

func TestIssue_InsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t, "")
	f.material("egg", "Telur", entity.CategoryWet, "kg", "1")
	f.material("flour", "Tepung", entity.CategoryDry, "kg", "1")
	f.seedLot("egg", "e1", "4", nil, fixedNow)
	f.seedLot("flour", "f1", "2", nil, fixedNow)

	_, err := f.issue.Issue(context.Background(), "chef-1", "", issueReq("Bakery",
		dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("3")},
		dto.IssueItemRequest{MaterialID: "flour", Quantity: dec("5")},
	))
	require.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "flour", ise.MaterialID)
	assert.True(t, ise.Available.Equal(dec("2")))

	assert.True(t, f.store.material("egg").CurrentStock.Equal(dec("4")))
	assert.True(t, f.store.material("flour").CurrentStock.Equal(dec("2")))
	assert.True(t, f.store.activeSum("egg").Equal(dec("4")))
	assert.Empty(t, f.store.transactions())
	assert.Empty(t, f.store.audits())
	assert.Equal(t, 0, f.notifier.count())
}

func TestIssue_Validaciones(t *testing.T) {
	f := newFixture(t, "")
	f.material("egg", "Telur", entity.CategoryWet, "kg", "1")
	f.seedLot("egg", "e1", "4", nil, fixedNow)

	_, err := f.issue.Issue(context.Background(), "u", "", issueReq(" ", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("1")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("-1")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("1"), Unit: "liter"}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen", dto.IssueItemRequest{MaterialID: "ghost", Quantity: dec("1")}))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("1.00004")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	old := f.material("old", "Lama", entity.CategoryDry, "kg", "0")
	old.IsActive = false
	f.store.addMaterial(old)
	f.seedLot("old", "o1", "3", nil, fixedNow)
	_, err = f.issue.Issue(context.Background(), "u", "", issueReq("Hot Kitchen", dto.IssueItemRequest{MaterialID: "old", Quantity: dec("1")}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.store.material("egg").CurrentStock.Equal(dec("4")))
	assert.True(t, f.store.material("old").CurrentStock.Equal(dec("3")))
	assert.Empty(t, f.store.transactions())
}

func TestIssue_Idempotente(t *testing.T) {
	f := newFixture(t, "")
	f.material("egg", "Telur", entity.CategoryWet, "kg", "1")
	f.seedLot("egg", "e1", "4", nil, fixedNow)
	req := issueReq("Bakery", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("1")})

	first, err := f.issue.Issue(context.Background(), "u", "issue-key", req)
	require.NoError(t, err)
	second, err := f.issue.Issue(context.Background(), "u", "issue-key", req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Replayed)
	assert.True(t, f.store.material("egg").CurrentStock.Equal(dec("3")))
	assert.Len(t, f.store.transactions(), 1)

	other := issueReq("Bakery", dto.IssueItemRequest{MaterialID: "egg", Quantity: dec("2")})
	_, err = f.issue.Issue(context.Background(), "u", "issue-key", other)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, f.store.material("egg").CurrentStock.Equal(dec("3")))
}

// El agregado coincide con la suma de lotes ACTIVE tras cualquier secuencia de recepciones y salidas.
func TestInvariante_SecuenciaAleatoria(t *testing.T) {
	f := newFixture(t, "")
	f.material("oil", "Minyak", entity.CategoryDry, "liter", "5")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		qty := decimal.NewFromInt(int64(rng.Intn(9) + 1))
		if rng.Intn(2) == 0 {
			var expiry *time.Time
			if rng.Intn(3) > 0 {
				e := fixedNow.AddDate(0, 0, rng.Intn(60))
				expiry = &e
			}
			f.receive(t, "oil", "liter", qty.String(), expiry)
		} else {
			_, err := f.issue.Issue(context.Background(), "u", "", issueReq("Main",
				dto.IssueItemRequest{MaterialID: "oil", Quantity: qty}))
			if err != nil {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}

		m := f.store.material("oil")
		require.True(t, m.CurrentStock.Equal(f.store.activeSum("oil")), "paso %d: stock %s lotes %s", i, m.CurrentStock, f.store.activeSum("oil"))
		require.False(t, m.CurrentStock.IsNegative())
		for _, l := range f.store.lotsOf("oil") {
			require.False(t, l.QuantityRemaining.IsNegative())
			require.True(t, l.QuantityRemaining.LessThanOrEqual(l.QuantityInitial))
			require.Equal(t, l.QuantityRemaining.IsZero(), l.Status == entity.LotStatusEmpty)
		}
	}
}

// Con unidades de trabajo serializadas por el store en memoria, salidas concurrentes nunca
// sobregiran. El bloqueo de filas en PostgreSQL se cubre por la forma de las consultas
// en el paquete postgres, no aquí.
func TestIssue_UnidadesSerializadasNuncaSobregiran(t *testing.T) {
	f := newFixture(t, "")
	f.material("salt", "Garam", entity.CategoryDry, "kg", "1")
	f.seedLot("salt", "s1", "6", date("2024-03-01"), fixedNow)
	f.seedLot("salt", "s2", "4", nil, fixedNow)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.issue.Issue(context.Background(), "u", "", issueReq("Main",
				dto.IssueItemRequest{MaterialID: "salt", Quantity: dec("1")}))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, rejected)
	assert.True(t, f.store.material("salt").CurrentStock.IsZero())
	assert.True(t, f.store.activeSum("salt").IsZero())
}
