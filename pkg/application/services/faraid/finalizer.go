package faraid

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/services"
)

// Finalizer reconciles the raw shares with the base number: increase ('Aul),
// shortfall (Radd) and indivisibility (Inkisar), in that order.
type Finalizer struct {
	classifier *services.RelationClassifier
}

// NewFinalizer creates a new finalizer
func NewFinalizer(classifier *services.RelationClassifier) *Finalizer {
	return &Finalizer{classifier: classifier}
}

// Increase raises the base number to the share total when the fixed shares oversubscribe it
func (f *Finalizer) Increase(st *allocation) error {
	total := st.shares.Total()
	if total.Cmp(new(big.Rat).SetInt64(st.base)) <= 0 {
		return nil
	}
	t, whole := ratToInt(total)
	if !whole {
		return entities.NewInconsistencyError("share total %s is not whole before increase correction", total.RatString())
	}
	st.notef("'Aul: shares total %d exceed base %d, base raised to %d", t, st.base, t)
	st.base = t
	st.status |= entities.StatusIncrease
	return nil
}

// Shortfall returns an unclaimed remainder to the fixed-share heirs when no residuary heir exists
func (f *Finalizer) Shortfall(st *allocation) error {
	total := st.shares.Total()
	if total.Sign() == 0 || total.Cmp(new(big.Rat).SetInt64(st.base)) >= 0 || st.hasResiduary() {
		return nil
	}

	var spouse *entities.FurudhItem
	others := make([]entities.FurudhItem, 0, len(st.items))
	for i := range st.items {
		if st.items[i].Category.IsSpouse() {
			spouse = &st.items[i]
			continue
		}
		others = append(others, st.items[i])
	}

	if spouse == nil || len(others) == 0 {
		t, whole := ratToInt(total)
		if !whole {
			return entities.NewInconsistencyError("share total %s is not whole before shortfall correction", total.RatString())
		}
		st.notef("Radd: shares total %d fall short of base %d, base reduced to %d", t, st.base, t)
		st.base = t
		st.status |= entities.StatusShortfall
		return nil
	}

	st.status |= entities.StatusShortfallWithSpouse
	if len(others) == 1 {
		return f.shortfallSingle(st, *spouse, others[0])
	}
	return f.shortfallJoint(st, *spouse, others)
}

// shortfallSingle solves spouse + one other claimant on the spouse's denominator
func (f *Finalizer) shortfallSingle(st *allocation, spouse, other entities.FurudhItem) error {
	d, n := spouse.Fraction.Den, spouse.Fraction.Num
	st.shares.SetInt(spouse.Category, n)
	st.shares.SetInt(other.Category, d-n)
	st.notef("Radd with spouse: base %d, %s keeps %d, %s takes the remaining %d", d, spouse.Category, n, other.Category, d-n)
	st.base = d
	return nil
}

// shortfallJoint solves the spouse problem and the other claimants' problem
// separately and merges them through the relation of the remainder to the sub-total.
func (f *Finalizer) shortfallJoint(st *allocation, spouse entities.FurudhItem, others []entities.FurudhItem) error {
	d, n := spouse.Fraction.Den, spouse.Fraction.Num
	remainder := d - n

	subBase, comparisons := NewBaseNumberCalculator(f.classifier).Calculate(others)
	st.comparisons = append(st.comparisons, comparisons...)

	sub := make(map[entities.HeirCategory]*big.Rat, len(others))
	poolHeads := make(map[entities.Pool]int64)
	for _, o := range others {
		if o.Pool != entities.NoPool {
			poolHeads[o.Pool] += int64(o.Quantity)
		}
	}
	subTotal := new(big.Rat)
	seenPool := make(map[entities.Pool]bool)
	for _, o := range others {
		share := big.NewRat(o.Fraction.Num*subBase, o.Fraction.Den)
		if o.Pool != entities.NoPool {
			if !seenPool[o.Pool] {
				subTotal.Add(subTotal, share)
				seenPool[o.Pool] = true
			}
			share.Mul(share, big.NewRat(int64(o.Quantity), poolHeads[o.Pool]))
		} else {
			subTotal.Add(subTotal, share)
		}
		sub[o.Category] = share
	}

	s, whole := ratToInt(subTotal)
	if !whole || s == 0 {
		return entities.NewInconsistencyError("shortfall sub-problem total %s is not a positive whole number", subTotal.RatString())
	}

	spouseMul, othersMul, item := f.classifier.Multipliers(remainder, s)
	st.comparisons = append(st.comparisons, item)

	st.base = d * spouseMul
	st.shares.SetInt(spouse.Category, n*spouseMul)
	for _, o := range others {
		share := sub[o.Category]
		share.Mul(share, big.NewRat(othersMul, 1))
		st.shares.Set(o.Category, share)
	}
	st.notef("Radd with spouse: remainder %d vs sub-base total %d (%s), spouse x%d, others x%d, base %d",
		remainder, s, item.Relation, spouseMul, othersMul, st.base)

	st.clearFractions("Radd")
	return nil
}

// Indivisibility multiplies the problem until every group's share divides by its head count
func (f *Finalizer) Indivisibility(st *allocation) error {
	multipliers := make([]int64, 0, 4)
	parts := make([]string, 0, 4)

	for _, item := range st.items {
		if item.Quantity <= 1 {
			continue
		}
		perHead := st.shares.Get(item.Category)
		perHead.Quo(perHead, big.NewRat(int64(item.Quantity), 1))
		if perHead.IsInt() {
			continue
		}
		m := perHead.Denom().Int64()
		multipliers = append(multipliers, m)
		parts = append(parts, fmt.Sprintf("%s %s over %d heads needs x%d",
			item.Category, st.shares.Get(item.Category).RatString(), item.Quantity, m))
	}
	if len(multipliers) == 0 {
		return nil
	}

	m, comparisons := f.classifier.Combine(multipliers)
	st.comparisons = append(st.comparisons, comparisons...)
	st.rescale(m)
	st.status |= entities.StatusIndivisibilityCorrected
	st.notef("Inkisar: %s; base multiplied by %d to %d", strings.Join(parts, ", "), m, st.base)
	return nil
}

// Verify checks the invariants every finished calculation must satisfy
func (f *Finalizer) Verify(st *allocation) error {
	var sum int64
	for _, item := range st.items {
		share, whole := st.shares.Int(item.Category)
		if !whole {
			return entities.NewInconsistencyError("%s ends with a fractional share %s",
				item.Category, st.shares.Get(item.Category).RatString())
		}
		if item.Quantity > 1 && share%int64(item.Quantity) != 0 {
			return entities.NewInconsistencyError("%s share %d does not divide between %d heads",
				item.Category, share, item.Quantity)
		}
		sum += share
	}
	if sum != st.base {
		return entities.NewInconsistencyError("shares total %d but the final base number is %d", sum, st.base)
	}
	return nil
}
