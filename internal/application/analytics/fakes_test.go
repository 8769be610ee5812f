package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type fakeQueries struct {
	mu         sync.Mutex
	dry, wet   decimal.Decimal
	low        []*entity.Material
	expiring   []repository.ExpiringLot
	sums       map[string][]repository.MaterialQuantity
	purchases  []repository.PurchaseRow
	waste      []repository.WasteRow
	failTotals bool

	lastSince time.Time
	lastFrom  time.Time
	lastUntil time.Time
	lastStart time.Time
	lastEnd   time.Time
	calls     int
}

func (f *fakeQueries) TotalsByCategory(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failTotals {
		return decimal.Zero, decimal.Zero, errors.New("db caída")
	}
	return f.dry, f.wet, nil
}

func (f *fakeQueries) LowStock(ctx context.Context, limit int) ([]*entity.Material, error) {
	if len(f.low) > limit {
		return f.low[:limit], nil
	}
	return f.low, nil
}

func (f *fakeQueries) ExpiringLots(ctx context.Context, from, until time.Time, limit int) ([]repository.ExpiringLot, error) {
	f.mu.Lock()
	f.lastFrom, f.lastUntil = from, until
	f.mu.Unlock()
	return f.expiring, nil
}

func (f *fakeQueries) SumByType(ctx context.Context, txType string, since time.Time) ([]repository.MaterialQuantity, error) {
	f.mu.Lock()
	f.lastSince = since
	f.mu.Unlock()
	return f.sums[txType], nil
}

func (f *fakeQueries) PurchaseRows(ctx context.Context, start, end time.Time) ([]repository.PurchaseRow, error) {
	f.lastStart, f.lastEnd = start, end
	return f.purchases, nil
}

func (f *fakeQueries) WasteRows(ctx context.Context, start, end time.Time) ([]repository.WasteRow, error) {
	f.lastStart, f.lastEnd = start, end
	return f.waste, nil
}

type fakeMaterials struct {
	list       []*entity.Material
	lastFilter repository.MaterialFilter
}

func (f *fakeMaterials) Create(ctx context.Context, m *entity.Material) error { return nil }
func (f *fakeMaterials) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return nil, nil
}
func (f *fakeMaterials) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return nil, nil
}
func (f *fakeMaterials) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	f.lastFilter = filter
	return f.list, nil
}
func (f *fakeMaterials) Update(ctx context.Context, m *entity.Material) error { return nil }
func (f *fakeMaterials) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	return nil
}

// fakeRenderer guarda el último reporte recibido.
type fakeRenderer struct {
	out  []byte
	last dto.Report
	err  error
}

func (f *fakeRenderer) Render(ctx context.Context, report dto.Report) ([]byte, error) {
	f.last = report
	return f.out, f.err
}

// mapCache caché en memoria con la misma semántica de versión que el de Redis.
type mapCache struct {
	version int
	data    map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{version: 1, data: map[string][]byte{}} }

func (c *mapCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	b, _ := json.Marshal(append(parts, string(rune('0'+c.version))))
	return string(b), nil
}

func (c *mapCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if raw, ok := c.data[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) bump() { c.version++ }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }
