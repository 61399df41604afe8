package faraid

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/faraid/pkg/domain/entities"
)

// DefaultAmountPrecision is the number of decimal places kept in computed amounts
const DefaultAmountPrecision int32 = 8

// AmountMaterializer converts final share counts into money
type AmountMaterializer struct {
	precision int32
}

// NewAmountMaterializer creates a materializer rounding to the given number of places.
// A non-positive precision selects DefaultAmountPrecision.
func NewAmountMaterializer(precision int32) *AmountMaterializer {
	if precision <= 0 {
		precision = DefaultAmountPrecision
	}
	return &AmountMaterializer{precision: precision}
}

// Amount returns estate * share / base, dividing once at the end
func (am *AmountMaterializer) Amount(estate decimal.Decimal, share, base int64) decimal.Decimal {
	if base <= 0 || share <= 0 {
		return decimal.Zero
	}
	return estate.Mul(decimal.NewFromInt(share)).DivRound(decimal.NewFromInt(base), am.precision)
}

// Materialize fills Amount and AmountEach on every record
func (am *AmountMaterializer) Materialize(estate decimal.Decimal, base int64, heirs []entities.HeirShare) {
	for i := range heirs {
		h := &heirs[i]
		h.Amount = am.Amount(estate, h.Share, base)
		h.AmountEach = decimal.Zero
		if h.Quantity > 0 {
			h.AmountEach = am.Amount(estate, h.Share, base*int64(h.Quantity))
		}
	}
}
