package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// lockMaterials bloquea (SELECT FOR UPDATE) los materiales en orden de ID ascendente
// para que operaciones concurrentes sobre varios materiales no se bloqueen mutuamente.
func lockMaterials(ctx context.Context, repo repository.MaterialRepository, ids []string) (map[string]*entity.Material, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	out := make(map[string]*entity.Material, len(unique))
	for _, id := range unique {
		m, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
		}
		out[id] = m
	}
	return out, nil
}

// consumeRequest salida de stock a repartir entre lotes.
type consumeRequest struct {
	Material    *entity.Material
	Quantity    decimal.Decimal
	Type        string
	Department  *string
	Reference   string
	UserID      string
	IssueItemID *string
	Now         time.Time
}

// consume reparte la cantidad entre los lotes del material en orden FEFO, escribe una transacción
// por lote tocado y descuenta el agregado. El material debe estar bloqueado por el caller.
// Si los lotes no alcanzan devuelve *domain.InsufficientStockError sin escribir nada.
func consume(ctx context.Context, repos Repos, req consumeRequest) ([]inventory.Allocation, []string, error) {
	m := req.Material
	lots, err := repos.Lots.ListActiveForUpdate(ctx, m.ID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := inventory.AllocateFEFO(lots, req.Quantity)
	if err != nil {
		var ise *domain.InsufficientStockError
		if errors.As(err, &ise) {
			ise.MaterialID = m.ID
			ise.MaterialName = m.Name
		}
		return nil, nil, err
	}

	byID := make(map[string]*entity.StockLot, len(lots))
	for _, l := range lots {
		byID[l.ID] = l
	}

	txIDs := make([]string, 0, len(plan))
	for _, a := range plan {
		lot := byID[a.LotID]
		lot.Take(a.Quantity)
		if err := repos.Lots.UpdateRemaining(ctx, lot); err != nil {
			return nil, nil, err
		}
		lotID := lot.ID
		tx := &entity.StockTransaction{
			ID:          uuid.New().String(),
			MaterialID:  m.ID,
			Type:        req.Type,
			Quantity:    a.Quantity,
			Unit:        m.Unit,
			Department:  req.Department,
			Reference:   req.Reference,
			UserID:      req.UserID,
			StockLotID:  &lotID,
			IssueItemID: req.IssueItemID,
			CreatedAt:   req.Now,
		}
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return nil, nil, err
		}
		txIDs = append(txIDs, tx.ID)
	}

	m.CurrentStock = m.CurrentStock.Sub(req.Quantity)
	if m.CurrentStock.IsNegative() {
		return nil, nil, &domain.InsufficientStockError{
			MaterialID: m.ID, MaterialName: m.Name,
			Requested: req.Quantity, Available: m.CurrentStock.Add(req.Quantity),
		}
	}
	if err := repos.Materials.UpdateStock(ctx, m.ID, m.CurrentStock); err != nil {
		return nil, nil, err
	}
	return plan, txIDs, nil
}

// ensureAvailable compara contra el agregado antes de tocar lotes.
func ensureAvailable(m *entity.Material, qty decimal.Decimal) error {
	if m.CurrentStock.LessThan(qty) {
		return &domain.InsufficientStockError{
			MaterialID:   m.ID,
			MaterialName: m.Name,
			Requested:    qty,
			Available:    m.CurrentStock,
		}
	}
	return nil
}

func appendAudit(ctx context.Context, repo repository.AuditLogRepository, userID, action, entityName, entityID string, details map[string]any, now time.Time) error {
	return repo.Append(ctx, &entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Details:   details,
		CreatedAt: now,
	})
}

// idempotency identifica una escritura con Idempotency-Key. key vacío = sin idempotencia.
type idempotency struct {
	key         string
	scope       string
	fingerprint string
}

// newIdempotency calcula la huella del cuerpo de la petición cuando hay clave.
func newIdempotency(key, scope string, req any) (idempotency, error) {
	idem := idempotency{key: strings.TrimSpace(key), scope: scope}
	if idem.key == "" {
		return idem, nil
	}
	body, err := json.Marshal(req)
	if err != nil {
		return idem, fmt.Errorf("fingerprint %s: %w", scope, err)
	}
	sum := sha256.Sum256(body)
	idem.fingerprint = hex.EncodeToString(sum[:])
	return idem, nil
}

// lookup devuelve los IDs del resultado ya confirmado. La misma clave con otro cuerpo es ErrConflict.
func (i idempotency) lookup(ctx context.Context, repo repository.IdempotencyRepository) ([]string, bool, error) {
	if i.key == "" {
		return nil, false, nil
	}
	rec, err := repo.Get(ctx, i.key, i.scope)
	if err != nil || rec == nil {
		return nil, false, err
	}
	if rec.Fingerprint != i.fingerprint {
		return nil, false, fmt.Errorf("idempotency key %q usada con otro cuerpo: %w", i.key, domain.ErrConflict)
	}
	return strings.Split(rec.ResultID, ","), true, nil
}

func (i idempotency) save(ctx context.Context, repo repository.IdempotencyRepository, resultIDs ...string) error {
	if i.key == "" {
		return nil
	}
	return repo.Save(ctx, &entity.IdempotencyRecord{
		Key:         i.key,
		Scope:       i.scope,
		Fingerprint: i.fingerprint,
		ResultID:    strings.Join(resultIDs, ","),
	})
}

// ensureActive rechaza movimientos de entrada o salida sobre materiales desactivados.
func ensureActive(field string, m *entity.Material) error {
	if !m.IsActive {
		return domain.NewValidationError(field, "el material "+m.Name+" está inactivo")
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
