package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// memState estado completo del almacén en memoria.
type memState struct {
	materials  map[string]*entity.Material
	lots       map[string]*entity.StockLot
	txs        map[string]*entity.StockTransaction
	txSeq      int64
	receivings map[string]*entity.Receiving
	issues     map[string]*entity.Issue
	opnames    map[string]*entity.StockOpname
	audits     []*entity.AuditLog
	idem       map[string]entity.IdempotencyRecord
	seqByDay   map[string]int
}

func newMemState() *memState {
	return &memState{
		materials:  map[string]*entity.Material{},
		lots:       map[string]*entity.StockLot{},
		txs:        map[string]*entity.StockTransaction{},
		receivings: map[string]*entity.Receiving{},
		issues:     map[string]*entity.Issue{},
		opnames:    map[string]*entity.StockOpname{},
		idem:       map[string]entity.IdempotencyRecord{},
		seqByDay:   map[string]int{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.materials {
		m := *v
		c.materials[k] = &m
	}
	for k, v := range s.lots {
		l := *v
		c.lots[k] = &l
	}
	for k, v := range s.txs {
		c.txs[k] = v
	}
	c.txSeq = s.txSeq
	for k, v := range s.receivings {
		r := *v
		r.Items = append([]*entity.ReceivingItem(nil), v.Items...)
		c.receivings[k] = &r
	}
	for k, v := range s.issues {
		i := *v
		i.Items = append([]*entity.IssueItem(nil), v.Items...)
		c.issues[k] = &i
	}
	for k, v := range s.opnames {
		o := *v
		o.Items = append([]*entity.StockOpnameItem(nil), v.Items...)
		c.opnames[k] = &o
	}
	c.audits = append(c.audits, s.audits...)
	for k, v := range s.idem {
		c.idem[k] = v
	}
	for k, v := range s.seqByDay {
		c.seqByDay[k] = v
	}
	return c
}

// memStore implementa TxRunner con semántica de snapshot: fn trabaja sobre una copia
// que solo reemplaza al estado si no hubo error. Las tx se serializan con un mutex.
type memStore struct {
	mu        sync.Mutex
	state     *memState
	failAudit bool
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) Run(ctx context.Context, fn TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(ctx, s.repos(work)); err != nil {
		return err
	}
	*s.state = *work
	return nil
}

func (s *memStore) RunLong(ctx context.Context, fn TxFunc) error {
	return s.Run(ctx, fn)
}

func (s *memStore) repos(st *memState) Repos {
	return Repos{
		Materials:    &memMaterials{st: st},
		Lots:         &memLots{st: st},
		Transactions: &memTransactions{st: st},
		Receivings:   &memReceivings{st: st},
		Issues:       &memIssues{st: st},
		Opnames:      &memOpnames{st: st},
		Audit:        &memAudit{st: st, fail: s.failAudit},
		Idempotency:  &memIdempotency{st: st},
	}
}

// read devuelve repos sobre el estado confirmado (lecturas fuera de tx, sin concurrencia).
func (s *memStore) read() Repos {
	return s.repos(s.state)
}

func (s *memStore) addMaterial(m *entity.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *m
	s.state.materials[m.ID] = &c
}

func (s *memStore) addLot(l *entity.StockLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *l
	s.state.lots[l.ID] = &c
}

func (s *memStore) material(id string) *entity.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *s.state.materials[id]
	return &c
}

func (s *memStore) lotsOf(materialID string) []*entity.StockLot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockLot
	for _, l := range s.state.lots {
		if l.MaterialID == materialID {
			c := *l
			out = append(out, &c)
		}
	}
	inventory.SortFEFO(out)
	return out
}

func (s *memStore) transactions() []*entity.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.StockTransaction, 0, len(s.state.txs))
	for _, t := range s.state.txs {
		out = append(out, t)
	}
	sortTransactions(out)
	return out
}

func (s *memStore) audits() []*entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.AuditLog(nil), s.state.audits...)
}

// activeSum suma el remanente de los lotes ACTIVE del material.
func (s *memStore) activeSum(materialID string) decimal.Decimal {
	return inventory.SumActive(s.lotsOf(materialID))
}

type memMaterials struct{ st *memState }

var _ repository.MaterialRepository = (*memMaterials)(nil)

func (r *memMaterials) Create(_ context.Context, m *entity.Material) error {
	c := *m
	r.st.materials[m.ID] = &c
	return nil
}

func (r *memMaterials) GetByID(_ context.Context, id string) (*entity.Material, error) {
	m, ok := r.st.materials[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *memMaterials) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *memMaterials) List(_ context.Context, f repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.st.materials {
		if f.ActiveOnly && !m.IsActive {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memMaterials) Update(_ context.Context, m *entity.Material) error {
	if _, ok := r.st.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *m
	r.st.materials[m.ID] = &c
	return nil
}

func (r *memMaterials) UpdateStock(_ context.Context, id string, current decimal.Decimal) error {
	m, ok := r.st.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	if current.IsNegative() {
		return errors.New("check constraint: current_stock >= 0")
	}
	m.CurrentStock = current
	return nil
}

type memLots struct{ st *memState }

func (r *memLots) Create(_ context.Context, l *entity.StockLot) error {
	c := *l
	r.st.lots[l.ID] = &c
	return nil
}

func (r *memLots) ListActiveForUpdate(_ context.Context, materialID string) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, l := range r.st.lots {
		if l.MaterialID == materialID && l.Status == entity.LotStatusActive && l.QuantityRemaining.GreaterThan(decimal.Zero) {
			c := *l
			out = append(out, &c)
		}
	}
	inventory.SortFEFO(out)
	return out, nil
}

func (r *memLots) UpdateRemaining(_ context.Context, l *entity.StockLot) error {
	cur, ok := r.st.lots[l.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.QuantityRemaining = l.QuantityRemaining
	cur.Status = l.Status
	return nil
}

type memTransactions struct{ st *memState }

// Create asigna Seq como la columna identity; el mapa no conserva orden de inserción,
// así que toda lectura ordenada depende de (CreatedAt, Seq) igual que en PostgreSQL.
func (r *memTransactions) Create(_ context.Context, t *entity.StockTransaction) error {
	r.st.txSeq++
	t.Seq = r.st.txSeq
	c := *t
	r.st.txs[t.ID] = &c
	return nil
}

func (r *memTransactions) ListByMaterial(_ context.Context, materialID string) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.st.txs {
		if t.MaterialID == materialID {
			out = append(out, t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (r *memTransactions) ListByIDs(_ context.Context, ids []string) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, id := range ids {
		if t, ok := r.st.txs[id]; ok {
			out = append(out, t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func sortTransactions(txs []*entity.StockTransaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.Before(txs[j].CreatedAt)
		}
		return txs[i].Seq < txs[j].Seq
	})
}

type memReceivings struct{ st *memState }

func (r *memReceivings) NextNumber(_ context.Context, day time.Time) (string, error) {
	key := day.Format("20060102")
	r.st.seqByDay[key]++
	return fmt.Sprintf("RCV-%s-%03d", key, r.st.seqByDay[key]), nil
}

func (r *memReceivings) Create(_ context.Context, rec *entity.Receiving) error {
	c := *rec
	c.Items = nil
	r.st.receivings[rec.ID] = &c
	return nil
}

func (r *memReceivings) CreateItem(_ context.Context, item *entity.ReceivingItem) error {
	rec, ok := r.st.receivings[item.ReceivingID]
	if !ok {
		return errors.New("foreign key: receiving")
	}
	c := *item
	rec.Items = append(rec.Items, &c)
	return nil
}

func (r *memReceivings) GetByID(_ context.Context, id string) (*entity.Receiving, error) {
	rec, ok := r.st.receivings[id]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

func (r *memReceivings) List(_ context.Context, limit, offset int) ([]*entity.Receiving, error) {
	var out []*entity.Receiving
	for _, rec := range r.st.receivings {
		c := *rec
		c.Items = nil
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memIssues struct{ st *memState }

func (r *memIssues) Create(_ context.Context, issue *entity.Issue) error {
	c := *issue
	c.Items = nil
	r.st.issues[issue.ID] = &c
	return nil
}

func (r *memIssues) CreateItem(_ context.Context, item *entity.IssueItem) error {
	issue, ok := r.st.issues[item.IssueID]
	if !ok {
		return errors.New("foreign key: issue")
	}
	c := *item
	issue.Items = append(issue.Items, &c)
	return nil
}

func (r *memIssues) GetByID(_ context.Context, id string) (*entity.Issue, error) {
	issue, ok := r.st.issues[id]
	if !ok {
		return nil, nil
	}
	c := *issue
	return &c, nil
}

type memOpnames struct{ st *memState }

func (r *memOpnames) Create(_ context.Context, o *entity.StockOpname) error {
	c := *o
	c.Items = nil
	r.st.opnames[o.ID] = &c
	return nil
}

func (r *memOpnames) CreateItem(_ context.Context, item *entity.StockOpnameItem) error {
	o, ok := r.st.opnames[item.StockOpnameID]
	if !ok {
		return errors.New("foreign key: stock_opname")
	}
	c := *item
	o.Items = append(o.Items, &c)
	return nil
}

func (r *memOpnames) GetByID(_ context.Context, id string) (*entity.StockOpname, error) {
	o, ok := r.st.opnames[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *memOpnames) List(_ context.Context, limit, offset int) ([]*entity.StockOpname, error) {
	var out []*entity.StockOpname
	for _, o := range r.st.opnames {
		c := *o
		c.Items = nil
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memAudit struct {
	st   *memState
	fail bool
}

func (r *memAudit) Append(_ context.Context, log *entity.AuditLog) error {
	if r.fail {
		return errors.New("audit: insert failed")
	}
	c := *log
	r.st.audits = append(r.st.audits, &c)
	return nil
}

type memIdempotency struct{ st *memState }

func (r *memIdempotency) Get(_ context.Context, key, scope string) (*entity.IdempotencyRecord, error) {
	rec, ok := r.st.idem[scope+"|"+key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memIdempotency) Save(_ context.Context, rec *entity.IdempotencyRecord) error {
	k := rec.Scope + "|" + rec.Key
	if _, ok := r.st.idem[k]; ok {
		return domain.ErrDuplicate
	}
	r.st.idem[k] = *rec
	return nil
}

// countingNotifier cuenta los avisos de cambio de stock.
type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) StockChanged(context.Context) {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
