package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// El bloqueo de filas lo hace Postgres; aquí se fija la forma de las consultas de las que depende.
func TestConsultasDeBloqueo(t *testing.T) {
	assert.True(t, strings.HasSuffix(strings.TrimSpace(materialForUpdateQuery), "FOR UPDATE"))
	assert.Contains(t, materialForUpdateQuery, "WHERE id = $1")

	lots := strings.Join(strings.Fields(activeLotsForUpdateQuery), " ")
	assert.Contains(t, lots, "ORDER BY expiry_date ASC NULLS LAST, received_at ASC, id ASC FOR UPDATE")
}

func TestConsultasDeMovimientosOrdenDeterminista(t *testing.T) {
	for name, q := range map[string]string{
		"por material": listTransactionsByMaterialQuery,
		"por ids":      listTransactionsByIDsQuery,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, q, "ORDER BY created_at ASC, seq ASC")
			assert.Contains(t, q, "id, seq, material_id")
		})
	}
	assert.True(t, strings.HasSuffix(strings.TrimSpace(insertTransactionQuery), "RETURNING seq"))
	assert.NotContains(t, insertTransactionQuery, "(id, seq,")
}
