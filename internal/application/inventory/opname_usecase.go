package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// OpnameUseCase concilia el stock del sistema con un conteo físico.
// Solo sobrescribe el agregado del material; los lotes no se tocan.
type OpnameUseCase struct {
	txRunner TxRunner
	opnames  repository.StockOpnameRepository
	notifier StockNotifier
	clock    func() time.Time
}

// NewOpnameUseCase construye el caso de uso. opnames se usa para lecturas fuera de tx.
func NewOpnameUseCase(txRunner TxRunner, opnames repository.StockOpnameRepository, notifier StockNotifier) *OpnameUseCase {
	return &OpnameUseCase{txRunner: txRunner, opnames: opnames, notifier: notifierOrNop(notifier), clock: time.Now}
}

// Submit registra el conteo. Toda diferencia distinta de cero exige motivo; si falta uno,
// el lote completo se rechaza antes de escribir.
func (uc *OpnameUseCase) Submit(ctx context.Context, userID, idempotencyKey string, in dto.CreateOpnameRequest) (*dto.OpnameResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "el conteo debe tener al menos una línea")
	}
	seen := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		if it.MaterialID == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].material_id", i), "el material es obligatorio")
		}
		if err := inventory.ValidateNonNegative(fmt.Sprintf("items[%d].physical_quantity", i), it.PhysicalQuantity); err != nil {
			return nil, err
		}
		if _, dup := seen[it.MaterialID]; dup {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].material_id", i), "material repetido en el conteo")
		}
		seen[it.MaterialID] = struct{}{}
	}

	idem, err := newIdempotency(idempotencyKey, ScopeOpname, in)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	opnameDate := now
	if in.OpnameDate != nil {
		opnameDate = *in.OpnameDate
	}

	var (
		opname   *entity.StockOpname
		isReplay bool
	)
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		prevIDs, found, err := idem.lookup(ctx, r.Idempotency)
		if err != nil {
			return err
		}
		if found {
			opname, err = r.Opnames.GetByID(ctx, prevIDs[0])
			if err != nil {
				return err
			}
			if opname == nil {
				return domain.ErrNotFound
			}
			isReplay = true
			return nil
		}

		ids := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.MaterialID)
		}
		materials, err := lockMaterials(ctx, r.Materials, ids)
		if err != nil {
			return err
		}

		lines := make([]inventory.CountLine, 0, len(in.Items))
		for _, it := range in.Items {
			m := materials[it.MaterialID]
			lines = append(lines, inventory.CountLine{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				System:       m.CurrentStock,
				Physical:     it.PhysicalQuantity,
				Reason:       strings.TrimSpace(it.Reason),
			})
		}
		if err := inventory.ValidateCount(lines); err != nil {
			return err
		}

		opname = &entity.StockOpname{
			ID:          uuid.New().String(),
			OpnameDate:  opnameDate,
			Notes:       in.Notes,
			CreatedByID: userID,
			CreatedAt:   now,
		}
		if err := r.Opnames.Create(ctx, opname); err != nil {
			return err
		}

		differences := 0
		for _, l := range lines {
			item := &entity.StockOpnameItem{
				ID:               uuid.New().String(),
				StockOpnameID:    opname.ID,
				MaterialID:       l.MaterialID,
				SystemQuantity:   l.System,
				PhysicalQuantity: l.Physical,
				Difference:       l.Difference(),
				Reason:           strPtr(l.Reason),
			}
			if err := r.Opnames.CreateItem(ctx, item); err != nil {
				return err
			}
			opname.Items = append(opname.Items, item)
			if !l.HasDifference() {
				continue
			}
			differences++

			m := materials[l.MaterialID]
			m.CurrentStock = l.Physical
			if err := r.Materials.UpdateStock(ctx, m.ID, m.CurrentStock); err != nil {
				return err
			}
			if err := r.Transactions.Create(ctx, &entity.StockTransaction{
				ID:         uuid.New().String(),
				MaterialID: m.ID,
				Type:       entity.TransactionTypeSTOCKOPNAME,
				Quantity:   item.Difference.Abs(),
				Unit:       m.Unit,
				Reference:  opname.ID,
				UserID:     userID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}

		if err := appendAudit(ctx, r.Audit, userID, entity.AuditActionStockOpname, "StockOpname", opname.ID, map[string]any{
			"items":       len(opname.Items),
			"differences": differences,
		}, now); err != nil {
			return err
		}
		return idem.save(ctx, r.Idempotency, opname.ID)
	})
	if err != nil {
		return nil, err
	}
	if !isReplay {
		uc.notifier.StockChanged(ctx)
	}
	out := toOpnameResponse(opname)
	out.Replayed = isReplay
	return out, nil
}

// GetByID devuelve el conteo con sus líneas.
func (uc *OpnameUseCase) GetByID(ctx context.Context, id string) (*dto.OpnameResponse, error) {
	o, err := uc.opnames.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toOpnameResponse(o), nil
}

// List devuelve los conteos más recientes primero (sin líneas).
func (uc *OpnameUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.OpnameResponse, error) {
	page.DefaultPage()
	list, err := uc.opnames.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OpnameResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOpnameResponse(o))
	}
	return out, nil
}

func toOpnameResponse(o *entity.StockOpname) *dto.OpnameResponse {
	out := &dto.OpnameResponse{
		ID:          o.ID,
		OpnameDate:  o.OpnameDate,
		Notes:       o.Notes,
		CreatedByID: o.CreatedByID,
		CreatedAt:   o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OpnameItemResponse{
			ID:               it.ID,
			MaterialID:       it.MaterialID,
			SystemQuantity:   it.SystemQuantity,
			PhysicalQuantity: it.PhysicalQuantity,
			Difference:       it.Difference,
			Reason:           it.Reason,
		})
	}
	return out
}
