package dto

import "github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"

// MaterialFromEntity convierte un material de dominio a su salida HTTP.
func MaterialFromEntity(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:              m.ID,
		Name:            m.Name,
		Unit:            m.Unit,
		Category:        m.Category,
		MinStock:        m.MinStock,
		CurrentStock:    m.CurrentStock,
		MainSupplier:    m.MainSupplier,
		StorageLocation: m.StorageLocation,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TransactionFromEntity convierte una transacción de stock.
func TransactionFromEntity(t *entity.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Quantity:    t.Quantity,
		Unit:        t.Unit,
		Department:  t.Department,
		Reference:   t.Reference,
		UserID:      t.UserID,
		StockLotID:  t.StockLotID,
		IssueItemID: t.IssueItemID,
		CreatedAt:   t.CreatedAt,
	}
}

// UserFromEntity convierte un usuario (sin hash de password).
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
