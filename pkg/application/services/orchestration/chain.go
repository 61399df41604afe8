package orchestration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// ChainShare is one heir line of the combined (jami'ah) problem
type ChainShare struct {
	Problem    int // 1 for heirs of the first deceased, 2 for heirs of the second
	Category   entities.HeirCategory
	Quantity   int
	Share      int64
	Amount     decimal.Decimal
	AmountEach decimal.Decimal
}

// ChainResult is the outcome of a chained-succession (munasakhot) calculation
type ChainResult struct {
	Estate           decimal.Decimal
	First            *entities.CalculationResult
	Second           *entities.CalculationResult
	Deceased         entities.HeirCategory
	DeceasedShare    int64 // share of one head of the second deceased in the first problem
	Comparison       entities.ComparisonItem
	FirstMultiplier  int64
	SecondMultiplier int64
	CombinedBase     int64
	Shares           []ChainShare
}

// RunChain solves an estate where one heir died before the division. The
// second deceased's share of the first problem is divided among their own
// heirs, and both problems are merged onto one combined base number.
func (o *SuccessionOrchestrator) RunChain(
	ctx context.Context,
	estate decimal.Decimal,
	firstHeirs []entities.HeirInput,
	deceased entities.HeirCategory,
	secondHeirs []entities.HeirInput,
) (*ChainResult, error) {
	// Step 1: first problem
	first, err := o.calculator.Calculate(ctx, estate, firstHeirs)
	if err != nil {
		return nil, fmt.Errorf("failed to solve the first problem: %w", err)
	}

	record, ok := first.Heir(deceased)
	if !ok {
		return nil, entities.NewDomainError(entities.ErrorUnknownCategory, "second_deceased",
			fmt.Sprintf("%s is not an heir of the first deceased", deceased))
	}
	if record.Blocked || record.Share == 0 {
		return nil, entities.NewDomainError(entities.ErrorInvalidQuantity, "second_deceased",
			fmt.Sprintf("%s inherits nothing from the first deceased", deceased))
	}
	s := record.Share / int64(record.Quantity)

	// Step 2: second problem on the deceased's own amount
	second, err := o.calculator.Calculate(ctx, record.AmountEach, secondHeirs)
	if err != nil {
		return nil, fmt.Errorf("failed to solve the second problem: %w", err)
	}
	b2 := second.Base.Final

	// Step 3: merge onto the combined base
	m1, m2, item := o.classifier.Multipliers(s, b2)
	result := &ChainResult{
		Estate:           estate,
		First:            first,
		Second:           second,
		Deceased:         deceased,
		DeceasedShare:    s,
		Comparison:       item,
		FirstMultiplier:  m1,
		SecondMultiplier: m2,
		CombinedBase:     first.Base.Final * m1,
	}

	var total int64
	for _, h := range first.Heirs {
		share, quantity := h.Share, h.Quantity
		if h.Category == deceased {
			share -= s
			quantity--
			if quantity == 0 {
				continue
			}
		}
		result.Shares = append(result.Shares, ChainShare{Problem: 1, Category: h.Category, Quantity: quantity, Share: share * m1})
		total += share * m1
	}
	for _, h := range second.Heirs {
		result.Shares = append(result.Shares, ChainShare{Problem: 2, Category: h.Category, Quantity: h.Quantity, Share: h.Share * m2})
		total += h.Share * m2
	}
	if total != result.CombinedBase {
		return nil, entities.NewInconsistencyError("combined shares total %d but the combined base is %d", total, result.CombinedBase)
	}

	// Step 4: amounts on the original estate
	for i := range result.Shares {
		sh := &result.Shares[i]
		sh.Amount = o.materializer.Amount(estate, sh.Share, result.CombinedBase)
		sh.AmountEach = o.materializer.Amount(estate, sh.Share, result.CombinedBase*int64(sh.Quantity))
	}

	o.logger.Debug("chain merged",
		zap.String("deceased", deceased.String()),
		zap.Int64("share", s),
		zap.Int64("second_base", b2),
		zap.String("relation", item.Relation.String()),
		zap.Int64("combined_base", result.CombinedBase),
	)
	return result, nil
}
