package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
	"github.com/jhoicas/kitchen-inventory-api/internal/domain/entity"
)

func TestOpname_MotivoFaltanteRechazaTodoElLote(t *testing.T) {
	f := newFixture(t, "")
	f.material("sugar", "Gula", entity.CategoryDry, "kg", "1")
	f.material("salt", "Garam", entity.CategoryDry, "kg", "1")
	f.seedLot("sugar", "g1", "10", nil, fixedNow)
	f.seedLot("salt", "s1", "5", nil, fixedNow)

	_, err := f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{
			{MaterialID: "sugar", PhysicalQuantity: dec("9"), Reason: "tumpah"},
			{MaterialID: "salt", PhysicalQuantity: dec("4")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.store.material("sugar").CurrentStock.Equal(dec("10")))
	assert.True(t, f.store.material("salt").CurrentStock.Equal(dec("5")))
	assert.Empty(t, f.store.transactions())
	assert.Empty(t, f.store.audits())

	list, err := f.opname.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpname_SobrescribeAgregadoYRegistraDiferencias(t *testing.T) {
	f := newFixture(t, "")
	f.material("sugar", "Gula", entity.CategoryDry, "kg", "1")
	f.material("salt", "Garam", entity.CategoryDry, "kg", "1")
	f.seedLot("sugar", "g1", "10", nil, fixedNow)
	f.seedLot("salt", "s1", "5", nil, fixedNow)

	out, err := f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{
			{MaterialID: "sugar", PhysicalQuantity: dec("7.5"), Reason: "tumpah"},
			{MaterialID: "salt", PhysicalQuantity: dec("5")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Difference.Equal(dec("-2.5")))
	assert.True(t, out.Items[1].Difference.IsZero())

	assert.True(t, f.store.material("sugar").CurrentStock.Equal(dec("7.5")))
	assert.True(t, f.store.material("salt").CurrentStock.Equal(dec("5")))
	// los lotes no se tocan
	assert.True(t, f.store.activeSum("sugar").Equal(dec("10")))

	txs := f.store.transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeSTOCKOPNAME, txs[0].Type)
	assert.True(t, txs[0].Quantity.Equal(dec("2.5")))
	assert.Equal(t, "kg", txs[0].Unit)
	assert.Equal(t, out.ID, txs[0].Reference)

	audits := f.store.audits()
	require.Len(t, audits, 1)
	assert.Equal(t, entity.AuditActionStockOpname, audits[0].Action)

	got, err := f.opname.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestOpname_Validaciones(t *testing.T) {
	f := newFixture(t, "")
	f.material("sugar", "Gula", entity.CategoryDry, "kg", "1")

	_, err := f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{Items: []dto.OpnameItemRequest{
		{MaterialID: "sugar", PhysicalQuantity: dec("-1"), Reason: "x"},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{Items: []dto.OpnameItemRequest{
		{MaterialID: "sugar", PhysicalQuantity: dec("1"), Reason: "x"},
		{MaterialID: "sugar", PhysicalQuantity: dec("2"), Reason: "y"},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{Items: []dto.OpnameItemRequest{
		{MaterialID: "ghost", PhysicalQuantity: dec("1"), Reason: "x"},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpname_DecimalesDeMasYMaterialInactivo(t *testing.T) {
	f := newFixture(t, "")
	f.material("sugar", "Gula", entity.CategoryDry, "kg", "1")
	f.seedLot("sugar", "g1", "10", nil, fixedNow)

	_, err := f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{{MaterialID: "sugar", PhysicalQuantity: dec("9.99999"), Reason: "tumpah"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.store.material("sugar").CurrentStock.Equal(dec("10")))

	// un material desactivado todavía se puede contar para liquidar su remanente
	old := f.material("old", "Lama", entity.CategoryDry, "kg", "0")
	old.IsActive = false
	old.CurrentStock = dec("2")
	f.store.addMaterial(old)
	_, err = f.opname.Submit(context.Background(), "wh-1", "", dto.CreateOpnameRequest{
		Items: []dto.OpnameItemRequest{{MaterialID: "old", PhysicalQuantity: dec("0"), Reason: "dibuang"}},
	})
	require.NoError(t, err)
	assert.True(t, f.store.material("old").CurrentStock.IsZero())
}
