package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// MaterialUseCase casos de uso del registro de materiales. CurrentStock solo cambia vía movimientos.
type MaterialUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.MaterialRepository
	notifier inventory.StockNotifier
}

// NewMaterialUseCase construye el caso de uso. repo se usa para lecturas fuera de tx.
func NewMaterialUseCase(txRunner inventory.TxRunner, repo repository.MaterialRepository, notifier inventory.StockNotifier) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, repo: repo, notifier: notifier}
}

// Create crea un material con stock cero y registra la auditoría en la misma tx.
func (uc *MaterialUseCase) Create(ctx context.Context, userID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if unit == "" {
		return nil, domain.NewValidationError("unit", "la unidad es obligatoria")
	}
	if !entity.IsValidCategory(category) {
		return nil, domain.NewValidationError("category", "categoría inválida: use DRY o WET")
	}
	if err := domaininv.ValidateNonNegative("min_stock", in.MinStock); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &entity.Material{
		ID:              uuid.New().String(),
		Name:            name,
		Unit:            unit,
		Category:        category,
		MinStock:        in.MinStock,
		CurrentStock:    decimal.Zero,
		MainSupplier:    trimPtr(in.MainSupplier),
		StorageLocation: trimPtr(in.StorageLocation),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.Repos) error {
		if err := r.Materials.Create(ctx, m); err != nil {
			return err
		}
		return r.Audit.Append(ctx, &entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    entity.AuditActionCreate,
			Entity:    "Material",
			EntityID:  m.ID,
			Details:   materialSnapshot(m),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx)
	out := dto.MaterialFromEntity(m)
	return &out, nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.MaterialFromEntity(m)
	return &out, nil
}

// List lista materiales ordenados por nombre.
func (uc *MaterialUseCase) List(ctx context.Context, q dto.MaterialListQuery) ([]dto.MaterialResponse, error) {
	category := strings.ToUpper(strings.TrimSpace(q.Category))
	if category != "" && !entity.IsValidCategory(category) {
		return nil, domain.NewValidationError("category", "categoría inválida: use DRY o WET")
	}
	list, err := uc.repo.List(ctx, repository.MaterialFilter{
		Category:   category,
		ActiveOnly: q.ActiveOnly,
		Search:     strings.TrimSpace(q.Search),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MaterialFromEntity(m))
	}
	return out, nil
}

// Update aplica una actualización parcial. is_active=false desactiva el material (no hay borrado).
func (uc *MaterialUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Category != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Category))
		if !entity.IsValidCategory(c) {
			return nil, domain.NewValidationError("category", "categoría inválida: use DRY o WET")
		}
		in.Category = &c
	}
	if in.MinStock != nil {
		if err := domaininv.ValidateNonNegative("min_stock", *in.MinStock); err != nil {
			return nil, err
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre no puede quedar vacío")
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		return nil, domain.NewValidationError("unit", "la unidad no puede quedar vacía")
	}

	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.Repos) error {
		m, err := r.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		before := materialSnapshot(m)

		if in.Name != nil {
			m.Name = strings.TrimSpace(*in.Name)
		}
		if in.Unit != nil {
			m.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.Category != nil {
			m.Category = *in.Category
		}
		if in.MinStock != nil {
			m.MinStock = *in.MinStock
		}
		if in.MainSupplier != nil {
			m.MainSupplier = trimPtr(in.MainSupplier)
		}
		if in.StorageLocation != nil {
			m.StorageLocation = trimPtr(in.StorageLocation)
		}
		if in.IsActive != nil {
			m.IsActive = *in.IsActive
		}
		m.UpdatedAt = time.Now()

		if err := r.Materials.Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return r.Audit.Append(ctx, &entity.AuditLog{
			ID:       uuid.New().String(),
			UserID:   userID,
			Action:   entity.AuditActionUpdate,
			Entity:   "Material",
			EntityID: m.ID,
			Details: map[string]any{
				"before": before,
				"after":  materialSnapshot(m),
			},
			CreatedAt: m.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx)
	out := dto.MaterialFromEntity(updated)
	return &out, nil
}

func (uc *MaterialUseCase) notify(ctx context.Context) {
	if uc.notifier != nil {
		uc.notifier.StockChanged(ctx)
	}
}

func materialSnapshot(m *entity.Material) map[string]any {
	snap := map[string]any{
		"name":      m.Name,
		"unit":      m.Unit,
		"category":  m.Category,
		"min_stock": m.MinStock.String(),
		"is_active": m.IsActive,
	}
	if m.MainSupplier != nil {
		snap["main_supplier"] = *m.MainSupplier
	}
	if m.StorageLocation != nil {
		snap["storage_location"] = *m.StorageLocation
	}
	return snap
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
