package inventory

import (
	"context"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/repository"
)

// StockUseCase lecturas de stock: semáforo por material e historial de movimientos.
type StockUseCase struct {
	materials    repository.MaterialRepository
	transactions repository.StockTransactionRepository
}

// NewStockUseCase construye el caso de uso con repositorios sobre el pool.
func NewStockUseCase(materials repository.MaterialRepository, transactions repository.StockTransactionRepository) *StockUseCase {
	return &StockUseCase{materials: materials, transactions: transactions}
}

// ListLevels devuelve los materiales activos ordenados por nombre con su nivel GREEN/YELLOW/RED.
func (uc *StockUseCase) ListLevels(ctx context.Context, category string) ([]dto.StockMaterialResponse, error) {
	list, err := uc.materials.List(ctx, repository.MaterialFilter{ActiveOnly: true, Category: category})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMaterialResponse{
			MaterialResponse: dto.MaterialFromEntity(m),
			Level:            inventory.StockLevel(m.CurrentStock, m.MinStock),
		})
	}
	return out, nil
}

// GetMaterialMovements devuelve el material y sus transacciones en orden cronológico.
func (uc *StockUseCase) GetMaterialMovements(ctx context.Context, materialID string) (*dto.MovementsResponse, error) {
	m, err := uc.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.transactions.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementsResponse{
		Material:     dto.MaterialFromEntity(m),
		Transactions: make([]dto.TransactionResponse, 0, len(txs)),
	}
	for _, t := range txs {
		out.Transactions = append(out.Transactions, dto.TransactionFromEntity(t))
	}
	return out, nil
}
