package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

const (
	dashboardTop       = 5                   // filas en low stock y nearly expired
	nearlyExpiredAhead = 7 * 24 * time.Hour  // ventana de vencimiento próximo
	usageWindow        = 30 * 24 * time.Hour // ventana de resúmenes de movimiento
)

// DashboardUseCase genera el resumen del tablero de stock.
//
// Fuente de datos: StockQueryRepository (consultas read-only) en paralelo.
// Si hay caché, el resultado se guarda bajo una clave versionada.
type DashboardUseCase struct {
	queries repository.StockQueryRepository
	cache   DashboardCache
	clock   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(queries repository.StockQueryRepository, cache DashboardCache) *DashboardUseCase {
	return &DashboardUseCase{queries: queries, cache: cache, clock: time.Now}
}

// GetSummary devuelve el tablero, desde caché cuando la versión no cambió.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.clock()
	if uc.cache == nil {
		return uc.load(ctx, now)
	}
	key, err := uc.cache.BuildKey(ctx, "stock", "dashboard", now.Format("2006-01-02"))
	if err != nil {
		// Sin versión no hay clave segura: consulta directa.
		return uc.load(ctx, now)
	}
	var out dto.DashboardResponse
	if err := uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return uc.load(ctx, now)
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *DashboardUseCase) load(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	out := &dto.DashboardResponse{GeneratedAt: now}
	since := now.Add(-usageWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dry, wet, err := uc.queries.TotalsByCategory(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: totales: %w", err)
		}
		out.TotalDry, out.TotalWet = dry, wet
		return nil
	})
	g.Go(func() error {
		list, err := uc.queries.LowStock(gctx, dashboardTop)
		if err != nil {
			return fmt.Errorf("dashboard: low stock: %w", err)
		}
		out.LowStock = make([]dto.StockMaterialResponse, 0, len(list))
		for _, m := range list {
			out.LowStock = append(out.LowStock, dto.StockMaterialResponse{
				MaterialResponse: dto.MaterialFromEntity(m),
				Level:            inventory.StockLevel(m.CurrentStock, m.MinStock),
			})
		}
		return nil
	})
	g.Go(func() error {
		lots, err := uc.queries.ExpiringLots(gctx, now, now.Add(nearlyExpiredAhead), dashboardTop)
		if err != nil {
			return fmt.Errorf("dashboard: vencimientos: %w", err)
		}
		out.NearlyExpired = make([]dto.ExpiringLotDTO, 0, len(lots))
		for _, l := range lots {
			out.NearlyExpired = append(out.NearlyExpired, dto.ExpiringLotDTO{
				LotID:             l.LotID,
				MaterialID:        l.MaterialID,
				MaterialName:      l.MaterialName,
				QuantityRemaining: l.QuantityRemaining,
				Unit:              l.Unit,
				ExpiryDate:        dto.NewDate(l.ExpiryDate),
			})
		}
		return nil
	})

	sums := []struct {
		txType string
		dest   *[]dto.MaterialQuantityDTO
	}{
		{entity.TransactionTypeOUT, &out.Usage},
		{entity.TransactionTypeIN, &out.Purchases},
		{entity.TransactionTypeWASTE, &out.Waste},
		{entity.TransactionTypeRETURN, &out.Returns},
	}
	for _, s := range sums {
		s := s
		g.Go(func() error {
			rows, err := uc.queries.SumByType(gctx, s.txType, since)
			if err != nil {
				return fmt.Errorf("dashboard: resumen %s: %w", s.txType, err)
			}
			list := make([]dto.MaterialQuantityDTO, 0, len(rows))
			for _, r := range rows {
				list = append(list, dto.MaterialQuantityDTO{
					MaterialID:   r.MaterialID,
					MaterialName: r.MaterialName,
					Unit:         r.Unit,
					Quantity:     r.Quantity,
				})
			}
			*s.dest = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
