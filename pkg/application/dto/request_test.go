package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

func TestCalculationRequest_ToDomain(t *testing.T) {
	req := CalculationRequest{
		Estate: "1500.50",
		Heirs: []HeirLine{
			{CategoryID: 3, Quantity: 1},
			{CategoryID: 1, Quantity: 1, BlockingReason: "murder"},
			{CategoryID: 16, Quantity: 2, Status: "khuntsa"},
		},
	}

	estate, heirs, err := req.ToDomain()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(estate))
	require.Len(t, heirs, 3)
	assert.Equal(t, entities.Husband, heirs[0].Category)
	assert.True(t, heirs[1].IsDisqualified())
	assert.Equal(t, entities.Intersex, heirs[2].Status)
}

func TestCalculationRequest_Errors(t *testing.T) {
	_, _, err := CalculationRequest{Estate: "lots", Heirs: []HeirLine{{CategoryID: 1, Quantity: 1}}}.ToDomain()
	var domainErr entities.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, entities.ErrorInvalidEstate, domainErr.Code)

	_, _, err = CalculationRequest{Estate: "10", Heirs: []HeirLine{{CategoryID: 1, Quantity: 1, Status: "ghost"}}}.ToDomain()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heirs[0]")
}

func TestFromResult(t *testing.T) {
	r := &entities.CalculationResult{
		ID:          "calc-1",
		Estate:      decimal.NewFromInt(100),
		Base:        entities.BaseNumber{Initial: 3, Final: 3},
		SpecialCase: entities.NoSpecialCase,
		Heirs: []entities.HeirShare{
			{Category: entities.Mother, Quantity: 1, FractionLabel: "1/3", Share: 1, Amount: decimal.RequireFromString("33.33333333"), AmountEach: decimal.RequireFromString("33.33333333")},
		},
	}

	out := FromResult(r, "SAR", 2)
	assert.Equal(t, "100.00", out.EstateValue)
	assert.Equal(t, "Balanced", out.Status)
	assert.Empty(t, out.SpecialCase)
	require.Len(t, out.Heirs, 1)
	assert.Equal(t, 18, out.Heirs[0].CategoryID)
	assert.Equal(t, "33.33", out.Heirs[0].Amount)
}
