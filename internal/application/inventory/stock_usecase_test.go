package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/inventory"
)

func TestGetMaterialMovements_OrdenCronologico(t *testing.T) {
	f := newFixture(t, "")
	f.material("rice", "Beras", entity.CategoryDry, "kg", "2")
	f.receive(t, "rice", "kg", "10", nil)
	_, err := f.issue.Issue(context.Background(), "u", "", dto.CreateIssueRequest{
		Department: "Main", Items: []dto.IssueItemRequest{{MaterialID: "rice", Quantity: dec("4")}},
	})
	require.NoError(t, err)

	out, err := f.stock.GetMaterialMovements(context.Background(), "rice")
	require.NoError(t, err)
	assert.True(t, out.Material.CurrentStock.Equal(dec("6")))
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, entity.TransactionTypeIN, out.Transactions[0].Type)
	assert.Equal(t, entity.TransactionTypeOUT, out.Transactions[1].Type)

	_, err = f.stock.GetMaterialMovements(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Todas las filas comparten CreatedAt (reloj fijo); el orden sale solo de la secuencia de inserción.
func TestGetMaterialMovements_FEFOMismoInstante(t *testing.T) {
	f := newFixture(t, "")
	f.material("milk", "Susu", entity.CategoryWet, "kg", "2")
	lotA := f.receive(t, "milk", "kg", "10", date("2024-02-01")).Items[0].LotID
	lotB := f.receive(t, "milk", "kg", "10", date("2024-01-15")).Items[0].LotID
	_, err := f.issue.Issue(context.Background(), "chef-1", "", dto.CreateIssueRequest{
		Department: "Pastry", Items: []dto.IssueItemRequest{{MaterialID: "milk", Quantity: dec("15")}},
	})
	require.NoError(t, err)

	out, err := f.stock.GetMaterialMovements(context.Background(), "milk")
	require.NoError(t, err)
	require.Len(t, out.Transactions, 4)

	type move struct {
		kind string
		lot  string
		qty  string
	}
	var got []move
	for _, tx := range out.Transactions {
		require.NotNil(t, tx.StockLotID)
		assert.True(t, tx.CreatedAt.Equal(fixedNow))
		got = append(got, move{tx.Type, *tx.StockLotID, tx.Quantity.String()})
	}
	assert.Equal(t, []move{
		{entity.TransactionTypeIN, lotA, "10"},
		{entity.TransactionTypeIN, lotB, "10"},
		{entity.TransactionTypeOUT, lotB, "10"},
		{entity.TransactionTypeOUT, lotA, "5"},
	}, got)
	assert.True(t, out.Material.CurrentStock.Equal(dec("5")))
}

func TestListLevels(t *testing.T) {
	f := newFixture(t, "")
	f.material("b", "Beras", entity.CategoryDry, "kg", "10")
	f.material("a", "Ayam", entity.CategoryWet, "kg", "10")
	f.seedLot("b", "b1", "12", nil, fixedNow)
	f.seedLot("a", "a1", "30", nil, fixedNow)

	out, err := f.stock.ListLevels(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ayam", out[0].Name)
	assert.Equal(t, inventory.LevelGreen, out[0].Level)
	assert.Equal(t, inventory.LevelYellow, out[1].Level)
}
