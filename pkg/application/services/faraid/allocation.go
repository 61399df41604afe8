package faraid

import (
	"fmt"
	"math/big"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/services"
)

// allocation is the working state of one calculation. It owns its ShareMap;
// each stage mutates it in turn and nothing else holds a reference to it.
type allocation struct {
	items       []entities.FurudhItem
	blocked     []entities.FurudhItem
	special     entities.SpecialCase
	shares      *entities.ShareMap
	initial     int64
	base        int64
	status      entities.Status
	notes       []string
	comparisons []entities.ComparisonItem
}

func newAllocation(items []entities.FurudhItem) *allocation {
	st := &allocation{
		items:  make([]entities.FurudhItem, 0, len(items)),
		shares: entities.NewShareMap(),
	}
	for _, item := range items {
		if item.Kind == entities.Blocked {
			st.blocked = append(st.blocked, item)
			continue
		}
		st.items = append(st.items, item)
	}
	return st
}

func (st *allocation) notef(format string, args ...any) {
	st.notes = append(st.notes, fmt.Sprintf(format, args...))
}

// rescale multiplies the base number and every share by m
func (st *allocation) rescale(m int64) {
	if m <= 1 {
		return
	}
	st.base *= m
	st.shares.Scale(m)
}

func (st *allocation) item(c entities.HeirCategory) (entities.FurudhItem, bool) {
	for _, item := range st.items {
		if item.Category == c {
			return item, true
		}
	}
	return entities.FurudhItem{}, false
}

func (st *allocation) has(c entities.HeirCategory) bool {
	_, ok := st.item(c)
	return ok
}

// hasResiduary reports whether any claimant can absorb a remainder
func (st *allocation) hasResiduary() bool {
	for _, item := range st.items {
		if item.IsResiduary() || item.Kind == entities.SharesWithGrandfather {
			return true
		}
	}
	return false
}

// remainder returns the base number minus everything assigned so far
func (st *allocation) remainder() *big.Rat {
	r := new(big.Rat).SetInt64(st.base)
	return r.Sub(r, st.shares.Total())
}

// denominatorLCM returns the lcm of the denominators of every share
func (st *allocation) denominatorLCM() int64 {
	m := int64(1)
	for _, c := range st.shares.Categories() {
		share := st.shares.Get(c)
		if share.IsInt() {
			continue
		}
		m = services.LCM(m, share.Denom().Int64())
	}
	return m
}

// clearFractions rescales the problem until every share is whole.
// It reports whether the base number changed.
func (st *allocation) clearFractions(stage string) bool {
	m := st.denominatorLCM()
	if m <= 1 {
		return false
	}
	st.rescale(m)
	st.status |= entities.StatusIndivisibilityCorrected
	st.notef("%s: fractional shares cleared, base multiplied by %d to %d", stage, m, st.base)
	return true
}

// reduce divides the base number and every whole share by their greatest common factor.
// It does nothing while any share is still fractional.
func (st *allocation) reduce(stage string) {
	g := st.base
	for _, c := range st.shares.Categories() {
		n, ok := st.shares.Int(c)
		if !ok {
			return
		}
		g = services.GCD(g, n)
	}
	if g <= 1 {
		return
	}
	divisor := big.NewRat(g, 1)
	for _, c := range st.shares.Categories() {
		st.shares.Set(c, new(big.Rat).Quo(st.shares.Get(c), divisor))
	}
	st.base /= g
	st.notef("%s: common factor %d removed, base reduced to %d", stage, g, st.base)
}

// splitAmong divides total between members in proportion to their units.
// When total is not a multiple of the unit sum, the problem is first multiplied
// by units/gcd(total, units) so every member receives a whole number.
func (st *allocation) splitAmong(stage string, total int64, members []entities.FurudhItem, units func(entities.FurudhItem) int64) {
	var sum int64
	for _, m := range members {
		sum += units(m)
	}
	if sum == 0 {
		return
	}

	if total%sum != 0 {
		m := sum / services.GCD(total, sum)
		st.rescale(m)
		total *= m
		st.status |= entities.StatusIndivisibilityCorrected
		st.notef("%s: %d units do not divide evenly, base multiplied by %d to %d", stage, sum, m, st.base)
	}

	for _, member := range members {
		st.shares.Add(member.Category, big.NewRat(total*units(member)/sum, 1))
	}
}

func headUnits(item entities.FurudhItem) int64 {
	return int64(item.Quantity)
}

func weightUnits(item entities.FurudhItem) int64 {
	return item.Units()
}

// ratToInt returns r as an int64 when r is whole
func ratToInt(r *big.Rat) (int64, bool) {
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	return r.Num().Int64(), true
}
