package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

func heirs(lines ...entities.HeirInput) []entities.HeirInput {
	return lines
}

func line(c entities.HeirCategory, qty int) entities.HeirInput {
	return entities.HeirInput{Category: c, Quantity: qty}
}

func TestRequestValidator_ValidateHeirs(t *testing.T) {
	v := NewRequestValidator()

	tests := []struct {
		name  string
		heirs []entities.HeirInput
		code  entities.ErrorCode
		field string
	}{
		{"valid", heirs(line(entities.Wife, 4), line(entities.Son, 3), line(entities.Daughter, 2)), "", ""},
		{"empty", nil, entities.ErrorEmptyRequest, "heirs"},
		{"unknown_category", heirs(line(entities.Son, 1), line(entities.HeirCategory(30), 1)), entities.ErrorUnknownCategory, "heirs[1].category_id"},
		{"zero_quantity", heirs(line(entities.Daughter, 0)), entities.ErrorInvalidQuantity, "heirs[0].quantity"},
		{"five_wives", heirs(line(entities.Wife, 5)), entities.ErrorInvalidQuantity, "heirs[0].quantity"},
		{"two_mothers", heirs(line(entities.Mother, 2)), entities.ErrorInvalidQuantity, "heirs[0].quantity"},
		{"duplicate", heirs(line(entities.Son, 1), line(entities.Daughter, 1), line(entities.Son, 2)), entities.ErrorDuplicateCategory, "heirs[2].category_id"},
		{"both_spouses", heirs(line(entities.Husband, 1), line(entities.Wife, 1)), entities.ErrorConflictingSpouse, "heirs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateHeirs(tt.heirs)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}

			var domainErr entities.DomainError
			require.True(t, errors.As(err, &domainErr), "expected a DomainError, got %v", err)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Equal(t, tt.field, domainErr.Field)
			assert.ErrorIs(t, err, entities.ErrInvalidInput)
		})
	}
}

func TestRequestValidator_ValidateEstate(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.ValidateEstate(decimal.RequireFromString("0.01")))
	assert.NoError(t, v.ValidateEstate(decimal.NewFromInt(120_000_000)))

	for _, bad := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		err := v.ValidateEstate(bad)
		var domainErr entities.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, entities.ErrorInvalidEstate, domainErr.Code)
		assert.Equal(t, "estate_value", domainErr.Field)
	}
}
