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
)

// IssueUseCase registra salidas de almacén a cocina consumiendo lotes en orden FEFO.
type IssueUseCase struct {
	txRunner TxRunner
	notifier StockNotifier
	clock    func() time.Time
}

// NewIssueUseCase construye el caso de uso.
func NewIssueUseCase(txRunner TxRunner, notifier StockNotifier) *IssueUseCase {
	return &IssueUseCase{txRunner: txRunner, notifier: notifierOrNop(notifier), clock: time.Now}
}

// Issue valida cada línea contra el agregado y luego reparte entre lotes (FEFO).
// Si una sola línea no alcanza, la salida completa se revierte.
func (uc *IssueUseCase) Issue(ctx context.Context, userID, idempotencyKey string, in dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	department := strings.TrimSpace(in.Department)
	if department == "" {
		return nil, domain.NewValidationError("department", "el departamento es obligatorio")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "la salida debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if it.MaterialID == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].material_id", i), "el material es obligatorio")
		}
		if err := inventory.ValidatePositive(fmt.Sprintf("items[%d].quantity", i), it.Quantity); err != nil {
			return nil, err
		}
	}
	idem, err := newIdempotency(idempotencyKey, ScopeIssue, in)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	issueDate := now
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}

	var (
		issue       *entity.Issue
		allocations = map[string][]dto.LotAllocationResponse{}
		isReplay    bool
	)
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		prevIDs, found, err := idem.lookup(ctx, r.Idempotency)
		if err != nil {
			return err
		}
		if found {
			issue, err = r.Issues.GetByID(ctx, prevIDs[0])
			if err != nil {
				return err
			}
			if issue == nil {
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

		issue = &entity.Issue{
			ID:          uuid.New().String(),
			IssueDate:   issueDate,
			Department:  department,
			Notes:       in.Notes,
			CreatedByID: userID,
			CreatedAt:   now,
		}
		if err := r.Issues.Create(ctx, issue); err != nil {
			return err
		}

		for i, it := range in.Items {
			m := materials[it.MaterialID]
			if err := ensureActive(fmt.Sprintf("items[%d].material_id", i), m); err != nil {
				return err
			}
			if it.Unit != "" && !strings.EqualFold(strings.TrimSpace(it.Unit), m.Unit) {
				return domain.NewValidationError(fmt.Sprintf("items[%d].unit", i),
					fmt.Sprintf("la unidad %q no coincide con la del material (%s)", it.Unit, m.Unit))
			}
			if err := ensureAvailable(m, it.Quantity); err != nil {
				return err
			}

			item := &entity.IssueItem{
				ID:               uuid.New().String(),
				IssueID:          issue.ID,
				MaterialID:       m.ID,
				Quantity:         it.Quantity,
				Unit:             m.Unit,
				UsageNote:        it.UsageNote,
				PhotoMaterialURL: it.PhotoMaterialURL,
			}
			if err := r.Issues.CreateItem(ctx, item); err != nil {
				return err
			}
			itemID := item.ID
			plan, _, err := consume(ctx, r, consumeRequest{
				Material:    m,
				Quantity:    it.Quantity,
				Type:        entity.TransactionTypeOUT,
				Department:  &department,
				Reference:   issue.ID,
				UserID:      userID,
				IssueItemID: &itemID,
				Now:         now,
			})
			if err != nil {
				return err
			}
			for _, a := range plan {
				allocations[item.ID] = append(allocations[item.ID], dto.LotAllocationResponse{LotID: a.LotID, Quantity: a.Quantity})
			}
			issue.Items = append(issue.Items, item)
		}

		if err := appendAudit(ctx, r.Audit, userID, entity.AuditActionIssue, "Issue", issue.ID, map[string]any{
			"department": department,
			"items":      len(issue.Items),
		}, now); err != nil {
			return err
		}
		return idem.save(ctx, r.Idempotency, issue.ID)
	})
	if err != nil {
		return nil, err
	}
	if !isReplay {
		uc.notifier.StockChanged(ctx)
	}
	out := toIssueResponse(issue, allocations)
	out.Replayed = isReplay
	return out, nil
}

func toIssueResponse(issue *entity.Issue, allocations map[string][]dto.LotAllocationResponse) *dto.IssueResponse {
	out := &dto.IssueResponse{
		ID:          issue.ID,
		IssueDate:   issue.IssueDate,
		Department:  issue.Department,
		Notes:       issue.Notes,
		CreatedByID: issue.CreatedByID,
		CreatedAt:   issue.CreatedAt,
		Items:       make([]dto.IssueItemResponse, 0, len(issue.Items)),
	}
	for _, it := range issue.Items {
		out.Items = append(out.Items, dto.IssueItemResponse{
			ID:               it.ID,
			MaterialID:       it.MaterialID,
			Quantity:         it.Quantity,
			Unit:             it.Unit,
			UsageNote:        it.UsageNote,
			PhotoMaterialURL: it.PhotoMaterialURL,
			Allocations:      allocations[it.ID],
		})
	}
	return out
}
