package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kitchen-inventory-api/internal/domain"
)

func TestValidationError_EnvuelveErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear recepción: %w", domain.NewValidationError("items", "al menos un item"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "items", ve.Field)
	assert.Equal(t, "items: al menos un item", ve.Error())
}

func TestInsufficientStockError_Mensaje(t *testing.T) {
	err := &domain.InsufficientStockError{
		MaterialID:   "m-1",
		MaterialName: "Beras",
		Requested:    decimal.NewFromInt(15),
		Available:    decimal.NewFromInt(5),
	}
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "stock de Beras insuficiente: solicitado 15, disponible 5", err.Error())
}
