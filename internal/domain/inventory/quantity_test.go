package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
)

func TestFitsScale(t *testing.T) {
	cases := map[string]bool{
		"1":       true,
		"1.0001":  true,
		"1.00010": true,
		"1.00004": false,
		"0.00001": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, FitsScale(decimal.RequireFromString(in)), in)
	}
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive("quantity", decimal.RequireFromString("2.5")))

	for _, in := range []string{"0", "-1", "1.00004"} {
		err := ValidatePositive("quantity", decimal.RequireFromString(in))
		var ve *domain.ValidationError
		if assert.True(t, errors.As(err, &ve), in) {
			assert.Equal(t, "quantity", ve.Field)
		}
	}
}

func TestValidateNonNegative(t *testing.T) {
	assert.NoError(t, ValidateNonNegative("physical_quantity", decimal.Zero))
	assert.ErrorIs(t, ValidateNonNegative("physical_quantity", decimal.RequireFromString("-0.5")), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateNonNegative("physical_quantity", decimal.RequireFromString("3.12345")), domain.ErrInvalidInput)
}
