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
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// ReceivingUseCase registra recepciones de proveedor: cabecera, líneas, inspecciones y lotes,
// todo en una sola transacción con timeout extendido.
type ReceivingUseCase struct {
	txRunner   TxRunner
	receivings repository.ReceivingRepository
	notifier   StockNotifier
	clock      func() time.Time
}

// NewReceivingUseCase construye el caso de uso. receivings se usa para lecturas fuera de tx.
func NewReceivingUseCase(txRunner TxRunner, receivings repository.ReceivingRepository, notifier StockNotifier) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:   txRunner,
		receivings: receivings,
		notifier:   notifierOrNop(notifier),
		clock:      time.Now,
	}
}

// Create registra la recepción. Por cada línea aceptada (RECEIVED/PARTIAL con cantidad > 0)
// crea un lote ACTIVE, una transacción IN y suma al stock del material.
func (uc *ReceivingUseCase) Create(ctx context.Context, userID, idempotencyKey string, in dto.CreateReceivingRequest) (*dto.ReceivingResponse, error) {
	if err := validateReceiving(in); err != nil {
		return nil, err
	}
	idem, err := newIdempotency(idempotencyKey, ScopeReceiving, in)
	if err != nil {
		return nil, err
	}
	now := uc.clock()
	receivedAt := now
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}

	var (
		rec      *entity.Receiving
		lotIDs   = map[string]string{}
		isReplay bool
	)
	err = uc.txRunner.RunLong(ctx, func(ctx context.Context, r Repos) error {
		prevIDs, found, err := idem.lookup(ctx, r.Idempotency)
		if err != nil {
			return err
		}
		if found {
			rec, err = r.Receivings.GetByID(ctx, prevIDs[0])
			if err != nil {
				return err
			}
			if rec == nil {
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

		rec = &entity.Receiving{
			ID:             uuid.New().String(),
			ReceivedAt:     receivedAt,
			SupplierName:   strings.TrimSpace(in.SupplierName),
			ReceiverName:   strings.TrimSpace(in.ReceiverName),
			InvoiceNumber:  in.InvoiceNumber,
			InvoiceFileURL: in.InvoiceFileURL,
			CreatedByID:    userID,
			CreatedAt:      now,
		}

		// primero se validan todas las líneas contra el material bloqueado
		for i, it := range in.Items {
			line, err := buildReceivingItem(rec.ID, materials[it.MaterialID], it, now)
			if err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
			rec.Items = append(rec.Items, line)
		}

		rec.Number, err = r.Receivings.NextNumber(ctx, receivedAt)
		if err != nil {
			return err
		}
		if err := r.Receivings.Create(ctx, rec); err != nil {
			return err
		}

		touched := map[string]*entity.Material{}
		for _, line := range rec.Items {
			if err := r.Receivings.CreateItem(ctx, line); err != nil {
				return err
			}
			if !line.CreatesLot() {
				continue
			}
			m := materials[line.MaterialID]
			lot := &entity.StockLot{
				ID:                uuid.New().String(),
				MaterialID:        m.ID,
				ReceivingItemID:   &line.ID,
				QuantityInitial:   line.QuantityAccepted,
				QuantityRemaining: line.QuantityAccepted,
				Unit:              m.Unit,
				ExpiryDate:        line.Inspection.ExpiryDate,
				Status:            entity.LotStatusActive,
				ReceivedAt:        receivedAt,
			}
			if err := r.Lots.Create(ctx, lot); err != nil {
				return err
			}
			lotID := lot.ID
			if err := r.Transactions.Create(ctx, &entity.StockTransaction{
				ID:         uuid.New().String(),
				MaterialID: m.ID,
				Type:       entity.TransactionTypeIN,
				Quantity:   line.QuantityAccepted,
				Unit:       m.Unit,
				Reference:  rec.Number,
				UserID:     userID,
				StockLotID: &lotID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
			m.CurrentStock = m.CurrentStock.Add(line.QuantityAccepted)
			touched[m.ID] = m
			lotIDs[line.ID] = lot.ID
		}
		for id, m := range touched {
			if err := r.Materials.UpdateStock(ctx, id, m.CurrentStock); err != nil {
				return err
			}
		}

		if err := appendAudit(ctx, r.Audit, userID, entity.AuditActionCreate, "Receiving", rec.ID, map[string]any{
			"number":        rec.Number,
			"supplier_name": rec.SupplierName,
			"items":         len(rec.Items),
			"lots":          len(lotIDs),
		}, now); err != nil {
			return err
		}
		return idem.save(ctx, r.Idempotency, rec.ID)
	})
	if err != nil {
		return nil, err
	}
	if !isReplay {
		uc.notifier.StockChanged(ctx)
	}
	out := toReceivingResponse(rec, lotIDs)
	out.Replayed = isReplay
	return out, nil
}

// GetByID devuelve la recepción con sus líneas.
func (uc *ReceivingUseCase) GetByID(ctx context.Context, id string) (*dto.ReceivingResponse, error) {
	rec, err := uc.receivings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toReceivingResponse(rec, nil), nil
}

// List devuelve las recepciones más recientes primero (sin líneas).
func (uc *ReceivingUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ReceivingResponse, error) {
	page.DefaultPage()
	list, err := uc.receivings.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceivingResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *toReceivingResponse(rec, nil))
	}
	return out, nil
}

func validateReceiving(in dto.CreateReceivingRequest) error {
	if strings.TrimSpace(in.SupplierName) == "" {
		return domain.NewValidationError("supplier_name", "el proveedor es obligatorio")
	}
	if strings.TrimSpace(in.ReceiverName) == "" {
		return domain.NewValidationError("receiver_name", "el receptor es obligatorio")
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("items", "la recepción debe tener al menos una línea")
	}
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.MaterialID == "" {
			return domain.NewValidationError(field+".material_id", "el material es obligatorio")
		}
		if strings.TrimSpace(it.Unit) == "" {
			return domain.NewValidationError(field+".unit", "la unidad es obligatoria")
		}
		if err := inventory.ValidatePositive(field+".quantity_received", it.QuantityReceived); err != nil {
			return err
		}
		if it.QuantityAccepted != nil {
			if err := inventory.ValidateNonNegative(field+".quantity_accepted", *it.QuantityAccepted); err != nil {
				return err
			}
			if it.QuantityAccepted.GreaterThan(it.QuantityReceived) {
				return domain.NewValidationError(field+".quantity_accepted", "debe estar entre 0 y la cantidad recibida")
			}
		}
	}
	return nil
}

// buildReceivingItem valida la línea contra el material y arma línea + inspección.
func buildReceivingItem(receivingID string, m *entity.Material, in dto.ReceivingItemRequest, now time.Time) (*entity.ReceivingItem, error) {
	if err := ensureActive("material_id", m); err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(in.Unit), m.Unit) {
		return nil, domain.NewValidationError("unit", fmt.Sprintf("la unidad %q no coincide con la del material (%s)", in.Unit, m.Unit))
	}

	status := entity.ReceivingStatusReceived
	if in.Status != "" {
		status = entity.NormalizeReceivingStatus(in.Status)
	}
	accepted := in.QuantityReceived
	if in.QuantityAccepted != nil {
		accepted = *in.QuantityAccepted
	}
	if status == entity.ReceivingStatusRejected {
		accepted = decimal.Zero
	}

	item := &entity.ReceivingItem{
		ID:               uuid.New().String(),
		ReceivingID:      receivingID,
		MaterialID:       m.ID,
		QuantityReceived: in.QuantityReceived,
		QuantityAccepted: accepted,
		Unit:             m.Unit,
		Status:           status,
	}
	insp, err := buildInspection(m, in.Inspection, now)
	if err != nil {
		return nil, err
	}
	insp.ReceivingItemID = item.ID
	item.Inspection = insp
	return item, nil
}

// buildInspection elige la variante según la categoría: WET para húmedos, DRY para secos.
func buildInspection(m *entity.Material, in dto.InspectionRequest, now time.Time) (*entity.Inspection, error) {
	if in.Wet != nil && in.Dry != nil {
		return nil, domain.NewValidationError("inspection", "envíe solo una checklist (wet o dry)")
	}
	kind := strings.ToUpper(strings.TrimSpace(in.Kind))
	if kind == "" {
		switch {
		case in.Wet != nil:
			kind = entity.InspectionKindWet
		case in.Dry != nil:
			kind = entity.InspectionKindDry
		default:
			kind = m.Category
		}
	}
	if kind != m.Category ||
		(kind == entity.InspectionKindWet && in.Dry != nil) ||
		(kind == entity.InspectionKindDry && in.Wet != nil) {
		return nil, domain.NewValidationError("inspection.kind",
			fmt.Sprintf("la inspección no corresponde a la categoría %s del material %s", m.Category, m.Name))
	}

	insp := &entity.Inspection{
		ID:               uuid.New().String(),
		PhotoMaterialURL: in.PhotoMaterialURL,
		PhotoFormURL:     in.PhotoFormURL,
		Status:           in.Status,
		Notes:            in.Notes,
		CreatedAt:        now,
	}
	if in.ExpiryDate != nil && !in.ExpiryDate.IsZero() {
		t := in.ExpiryDate.Time
		insp.ExpiryDate = &t
	}
	if kind == entity.InspectionKindWet {
		var d entity.WetInspection
		if in.Wet != nil {
			d = entity.WetInspection{
				TemperatureC:  in.Wet.TemperatureC,
				ColorStatus:   in.Wet.ColorStatus,
				AromaStatus:   in.Wet.AromaStatus,
				TextureStatus: in.Wet.TextureStatus,
			}
		}
		insp.Details = d
	} else {
		var d entity.DryInspection
		if in.Dry != nil {
			d = entity.DryInspection{
				PackagingCondition: in.Dry.PackagingCondition,
				HasPest:            in.Dry.HasPest,
				HumidityCondition:  in.Dry.HumidityCondition,
			}
		}
		insp.Details = d
	}
	return insp, nil
}

func toReceivingResponse(rec *entity.Receiving, lotIDs map[string]string) *dto.ReceivingResponse {
	out := &dto.ReceivingResponse{
		ID:             rec.ID,
		Number:         rec.Number,
		ReceivedAt:     rec.ReceivedAt,
		SupplierName:   rec.SupplierName,
		ReceiverName:   rec.ReceiverName,
		InvoiceNumber:  rec.InvoiceNumber,
		InvoiceFileURL: rec.InvoiceFileURL,
		CreatedByID:    rec.CreatedByID,
		CreatedAt:      rec.CreatedAt,
	}
	for _, it := range rec.Items {
		line := dto.ReceivingItemResponse{
			ID:               it.ID,
			MaterialID:       it.MaterialID,
			QuantityReceived: it.QuantityReceived,
			QuantityAccepted: it.QuantityAccepted,
			Unit:             it.Unit,
			Status:           it.Status,
			LotID:            lotIDs[it.ID],
		}
		if it.Inspection != nil {
			line.Inspection = toInspectionResponse(it.Inspection)
		}
		out.Items = append(out.Items, line)
	}
	return out
}

func toInspectionResponse(i *entity.Inspection) *dto.InspectionResponse {
	out := &dto.InspectionResponse{
		PhotoMaterialURL: i.PhotoMaterialURL,
		PhotoFormURL:     i.PhotoFormURL,
		Status:           i.Status,
		Notes:            i.Notes,
	}
	if i.Details != nil {
		out.Kind = i.Details.Kind()
		out.Details = i.Details
	}
	if i.ExpiryDate != nil {
		d := dto.NewDate(*i.ExpiryDate)
		out.ExpiryDate = &d
	}
	return out
}
