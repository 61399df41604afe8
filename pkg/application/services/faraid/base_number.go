package faraid

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/services"
)

// BaseNumberCalculator derives the common denominator of a problem and
// expresses every fixed fraction as a whole number of shares of it.
type BaseNumberCalculator struct {
	classifier *services.RelationClassifier
}

// NewBaseNumberCalculator creates a new base number calculator
func NewBaseNumberCalculator(classifier *services.RelationClassifier) *BaseNumberCalculator {
	return &BaseNumberCalculator{classifier: classifier}
}

// Calculate returns the base number for the given items and the pairwise
// comparisons used to reach it. An empty item list yields 1.
func (bc *BaseNumberCalculator) Calculate(items []entities.FurudhItem) (int64, []entities.ComparisonItem) {
	denominators := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !item.HasFixedShare() || seen[item.Fraction.Den] {
			continue
		}
		seen[item.Fraction.Den] = true
		denominators = append(denominators, item.Fraction.Den)
	}

	if len(denominators) > 0 {
		return bc.classifier.Combine(denominators)
	}
	return headWeightBase(items), nil
}

// headWeightBase sums the residue weights of an all-residuary problem.
// A group made only of men counts one per head.
func headWeightBase(items []entities.FurudhItem) int64 {
	allMale := true
	for _, item := range items {
		if item.Category.Sex() != entities.Male {
			allMale = false
			break
		}
	}

	var base int64
	for _, item := range items {
		if allMale {
			base += int64(item.Quantity)
			continue
		}
		base += item.Units()
	}
	if base < 1 {
		return 1
	}
	return base
}

func (bc *BaseNumberCalculator) apply(st *allocation) {
	base, comparisons := bc.Calculate(st.items)
	st.base = base
	st.initial = base
	st.comparisons = append(st.comparisons, comparisons...)

	if len(comparisons) == 0 {
		st.notef("Base number: %d", base)
		return
	}
	parts := make([]string, 0, len(comparisons))
	for _, c := range comparisons {
		parts = append(parts, c.String())
	}
	st.notef("Base number: %d (%s)", base, strings.Join(parts, "; "))
}

// AssignFixedShares writes fraction x base into the share map for every fixed item.
// Pooled groups split their fraction per head, rescaling the problem when needed.
func (bc *BaseNumberCalculator) AssignFixedShares(st *allocation) {
	pools := make(map[entities.Pool][]entities.FurudhItem)
	poolOrder := make([]entities.Pool, 0, 2)

	for _, item := range st.items {
		if !item.HasFixedShare() {
			continue
		}
		if item.Pool != entities.NoPool {
			if _, exists := pools[item.Pool]; !exists {
				poolOrder = append(poolOrder, item.Pool)
			}
			pools[item.Pool] = append(pools[item.Pool], item)
			continue
		}
		share := item.Fraction.Num * st.base / item.Fraction.Den
		st.shares.Set(item.Category, big.NewRat(share, 1))
	}

	for _, pool := range poolOrder {
		members := pools[pool]
		f := members[0].Fraction
		total := f.Num * st.base / f.Den
		st.splitAmong(fmt.Sprintf("%s pool", pool), total, members, headUnits)
	}
}
