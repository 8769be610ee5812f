package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/pkg/config"
)

// Direcciones de un ajuste.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// AdjustmentUseCase aplica ajustes, mermas (WASTE) y devoluciones (RETURN) sobre el agregado.
// Con la política fefo además mueve lotes: las salidas consumen FEFO y las entradas crean un lote sintético.
type AdjustmentUseCase struct {
	txRunner TxRunner
	notifier StockNotifier
	policy   string
	clock    func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso. policy vacío = aggregate.
func NewAdjustmentUseCase(txRunner TxRunner, notifier StockNotifier, policy string) *AdjustmentUseCase {
	if policy == "" {
		policy = config.LotPolicyAggregate
	}
	return &AdjustmentUseCase{txRunner: txRunner, notifier: notifierOrNop(notifier), policy: policy, clock: time.Now}
}

// Adjust valida y aplica el ajuste en una transacción.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, userID, idempotencyKey string, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	kind := strings.ToUpper(strings.TrimSpace(in.Type))
	if kind == "" {
		kind = entity.TransactionTypeADJUSTMENT
	}
	switch kind {
	case entity.TransactionTypeADJUSTMENT, entity.TransactionTypeWASTE, entity.TransactionTypeRETURN:
	default:
		return nil, domain.NewValidationError("type", "tipo inválido: use ADJUSTMENT, WASTE o RETURN")
	}
	direction := strings.ToUpper(strings.TrimSpace(in.Direction))
	if direction == "" {
		direction = DirectionOut
	}
	if direction != DirectionIn && direction != DirectionOut {
		return nil, domain.NewValidationError("direction", "dirección inválida: use IN u OUT")
	}
	if direction == DirectionIn && kind != entity.TransactionTypeADJUSTMENT {
		return nil, domain.NewValidationError("direction", kind+" solo admite salida (OUT)")
	}
	if in.MaterialID == "" {
		return nil, domain.NewValidationError("material_id", "el material es obligatorio")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "el motivo es obligatorio")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return nil, domain.NewValidationError("unit", "la unidad es obligatoria")
	}
	if err := inventory.ValidatePositive("quantity", in.Quantity); err != nil {
		return nil, err
	}
	idem, err := newIdempotency(idempotencyKey, ScopeAdjustment, in)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	var out *dto.AdjustmentResponse
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		prevIDs, found, err := idem.lookup(ctx, r.Idempotency)
		if err != nil {
			return err
		}
		if found {
			out, err = replayAdjustment(ctx, r, prevIDs)
			return err
		}

		materials, err := lockMaterials(ctx, r.Materials, []string{in.MaterialID})
		if err != nil {
			return err
		}
		material := materials[in.MaterialID]
		if err := ensureActive("material_id", material); err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(in.Unit), material.Unit) {
			return domain.NewValidationError("unit", fmt.Sprintf("la unidad %q no coincide con la del material (%s)", in.Unit, material.Unit))
		}

		var txIDs []string
		if direction == DirectionOut {
			if err := ensureAvailable(material, in.Quantity); err != nil {
				return err
			}
			txIDs, err = uc.applyOut(ctx, r, material, kind, in.Quantity, userID, now)
		} else {
			txIDs, err = uc.applyIn(ctx, r, material, kind, in.Quantity, userID, now)
		}
		if err != nil {
			return err
		}

		details := map[string]any{
			"direction": direction,
			"reason":    reason,
			"quantity":  in.Quantity.String(),
			"unit":      material.Unit,
		}
		if kind == entity.TransactionTypeRETURN {
			if in.SupplierName != nil {
				details["supplier_name"] = *in.SupplierName
			}
			if len(in.PhotoURLs) > 0 {
				details["photo_urls"] = in.PhotoURLs
			}
		}
		if err := appendAudit(ctx, r.Audit, userID, kind, "Material", material.ID, details, now); err != nil {
			return err
		}
		out = &dto.AdjustmentResponse{
			Type:           kind,
			Direction:      direction,
			Quantity:       in.Quantity,
			Material:       dto.MaterialFromEntity(material),
			TransactionIDs: txIDs,
		}
		return idem.save(ctx, r.Idempotency, txIDs...)
	})
	if err != nil {
		return nil, err
	}
	if !out.Replayed {
		uc.notifier.StockChanged(ctx)
	}
	return out, nil
}

// replayAdjustment reconstruye la respuesta desde las transacciones ya confirmadas.
func replayAdjustment(ctx context.Context, r Repos, txIDs []string) (*dto.AdjustmentResponse, error) {
	txs, err := r.Transactions.ListByIDs(ctx, txIDs)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("transacciones del ajuste: %w", domain.ErrNotFound)
	}
	material, err := r.Materials.GetByID(ctx, txs[0].MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %s: %w", txs[0].MaterialID, domain.ErrNotFound)
	}
	_, direction := parseAdjustmentReference(txs[0].Reference)
	out := &dto.AdjustmentResponse{
		Type:      txs[0].Type,
		Direction: direction,
		Quantity:  decimal.Zero,
		Material:  dto.MaterialFromEntity(material),
		Replayed:  true,
	}
	for _, t := range txs {
		out.Quantity = out.Quantity.Add(t.Quantity)
		out.TransactionIDs = append(out.TransactionIDs, t.ID)
	}
	return out, nil
}

// adjustmentReference registra tipo y dirección en la transacción, ej. "ADJUSTMENT:IN".
func adjustmentReference(kind, direction string) string {
	return kind + ":" + direction
}

func parseAdjustmentReference(ref string) (kind, direction string) {
	kind, direction, ok := strings.Cut(ref, ":")
	if !ok {
		return ref, DirectionOut
	}
	return kind, direction
}

func (uc *AdjustmentUseCase) applyOut(ctx context.Context, r Repos, m *entity.Material, kind string, qty decimal.Decimal, userID string, now time.Time) ([]string, error) {
	if uc.policy == config.LotPolicyFEFO {
		_, ids, err := consume(ctx, r, consumeRequest{
			Material:  m,
			Quantity:  qty,
			Type:      kind,
			Reference: adjustmentReference(kind, DirectionOut),
			UserID:    userID,
			Now:       now,
		})
		return ids, err
	}

	m.CurrentStock = m.CurrentStock.Sub(qty)
	if err := r.Materials.UpdateStock(ctx, m.ID, m.CurrentStock); err != nil {
		return nil, err
	}
	id, err := uc.writeTransaction(ctx, r, m, kind, DirectionOut, qty, nil, userID, now)
	if err != nil {
		return nil, err
	}
	return []string{id}, nil
}

func (uc *AdjustmentUseCase) applyIn(ctx context.Context, r Repos, m *entity.Material, kind string, qty decimal.Decimal, userID string, now time.Time) ([]string, error) {
	var lotID *string
	if uc.policy == config.LotPolicyFEFO {
		lot := &entity.StockLot{
			ID:                uuid.New().String(),
			MaterialID:        m.ID,
			QuantityInitial:   qty,
			QuantityRemaining: qty,
			Unit:              m.Unit,
			Status:            entity.LotStatusActive,
			ReceivedAt:        now,
		}
		if err := r.Lots.Create(ctx, lot); err != nil {
			return nil, err
		}
		lotID = &lot.ID
	}

	m.CurrentStock = m.CurrentStock.Add(qty)
	if err := r.Materials.UpdateStock(ctx, m.ID, m.CurrentStock); err != nil {
		return nil, err
	}
	id, err := uc.writeTransaction(ctx, r, m, kind, DirectionIn, qty, lotID, userID, now)
	if err != nil {
		return nil, err
	}
	return []string{id}, nil
}

func (uc *AdjustmentUseCase) writeTransaction(ctx context.Context, r Repos, m *entity.Material, kind, direction string, qty decimal.Decimal, lotID *string, userID string, now time.Time) (string, error) {
	tx := &entity.StockTransaction{
		ID:         uuid.New().String(),
		MaterialID: m.ID,
		Type:       kind,
		Quantity:   qty,
		Unit:       m.Unit,
		Reference:  adjustmentReference(kind, direction),
		UserID:     userID,
		StockLotID: lotID,
		CreatedAt:  now,
	}
	if err := r.Transactions.Create(ctx, tx); err != nil {
		return "", err
	}
	return tx.ID, nil
}
