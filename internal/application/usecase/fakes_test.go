package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

type fakeMaterials struct {
	items map[string]*entity.Material
}

func newFakeMaterials() *fakeMaterials {
	return &fakeMaterials{items: map[string]*entity.Material{}}
}

func (f *fakeMaterials) Create(_ context.Context, m *entity.Material) error {
	c := *m
	f.items[m.ID] = &c
	return nil
}

func (f *fakeMaterials) GetByID(_ context.Context, id string) (*entity.Material, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (f *fakeMaterials) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeMaterials) List(_ context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range f.items {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeMaterials) Update(_ context.Context, m *entity.Material) error {
	c := *m
	f.items[m.ID] = &c
	return nil
}

func (f *fakeMaterials) UpdateStock(_ context.Context, id string, current decimal.Decimal) error {
	f.items[id].CurrentStock = current
	return nil
}

type fakeAudit struct {
	logs []*entity.AuditLog
	fail bool
}

func (f *fakeAudit) Append(_ context.Context, l *entity.AuditLog) error {
	if f.fail {
		return errors.New("audit down")
	}
	f.logs = append(f.logs, l)
	return nil
}

// fakeTx ejecuta fn directamente; si falla, restaura la copia previa de los materiales.
type fakeTx struct {
	materials *fakeMaterials
	audit     *fakeAudit
}

func (f *fakeTx) Run(ctx context.Context, fn inventory.TxFunc) error {
	snapshot := map[string]*entity.Material{}
	for k, v := range f.materials.items {
		c := *v
		snapshot[k] = &c
	}
	logs := len(f.audit.logs)
	if err := fn(ctx, inventory.Repos{Materials: f.materials, Audit: f.audit}); err != nil {
		f.materials.items = snapshot
		f.audit.logs = f.audit.logs[:logs]
		return err
	}
	return nil
}

func (f *fakeTx) RunLong(ctx context.Context, fn inventory.TxFunc) error {
	return f.Run(ctx, fn)
}

type fakeUsers struct {
	byID map[string]*entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*entity.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	c := *u
	f.byID[u.ID] = &c
	return nil
}

func (f *fakeUsers) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
