package faraid

import (
	"math/big"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// grandfatherOption is one candidate share for the grandfather among siblings
type grandfatherOption struct {
	name  string
	share *big.Rat
}

// ShareWithGrandfather allocates what the fixed heirs leave between the
// grandfather and the siblings, for both Jadd-wal-Ikhwah and al-'Add.
func (o *SpecialCaseOverrider) ShareWithGrandfather(st *allocation) error {
	base := new(big.Rat).SetInt64(st.base)
	remainder := st.remainder()
	if remainder.Sign() < 0 {
		remainder.SetInt64(0)
	}

	othersFixed := false
	siblings := make([]entities.FurudhItem, 0, 4)
	for _, item := range st.items {
		switch {
		case item.Kind == entities.SharesWithGrandfather && item.Category != entities.Grandfather:
			siblings = append(siblings, item)
		case item.HasFixedShare():
			othersFixed = true
		}
	}
	if len(siblings) == 0 {
		return entities.NewInconsistencyError("%s matched without any sibling", st.special)
	}

	heads := int64(2)
	for _, s := range siblings {
		heads += s.Units()
	}

	options := make([]grandfatherOption, 0, 3)
	options = append(options, grandfatherOption{
		name:  "muqasamah",
		share: new(big.Rat).Mul(remainder, big.NewRat(2, heads)),
	})
	sixth := new(big.Rat).Mul(base, big.NewRat(1, 6))
	if othersFixed {
		options = append(options,
			grandfatherOption{name: "one third of the residue", share: new(big.Rat).Mul(remainder, big.NewRat(1, 3))},
			grandfatherOption{name: "one sixth of the estate", share: sixth},
		)
	} else {
		options = append(options, grandfatherOption{
			name:  "one third of the estate",
			share: new(big.Rat).Mul(base, big.NewRat(1, 3)),
		})
	}

	// Strictly greater wins, so ties keep the earlier option (muqasamah first).
	best := options[0]
	for _, opt := range options[1:] {
		if opt.share.Cmp(best.share) > 0 {
			best = opt
		}
	}
	if othersFixed && best.share.Cmp(sixth) < 0 {
		best = grandfatherOption{name: "one sixth of the estate", share: sixth}
	}

	for _, opt := range options {
		st.notef("%s: grandfather option %s = %s", st.special, opt.name, opt.share.RatString())
	}
	st.notef("%s: grandfather takes %s (%s)", st.special, best.name, best.share.RatString())
	st.shares.Set(entities.Grandfather, best.share)

	rest := new(big.Rat).Sub(remainder, best.share)
	if rest.Sign() < 0 {
		rest.SetInt64(0)
	}

	if st.special == entities.AlAdd {
		rest, siblings = o.fullSisterFirst(st, base, rest, siblings)
	}
	splitRat(st, rest, siblings)

	if st.clearFractions(st.special.String()) {
		st.reduce(st.special.String())
	}
	return nil
}

// fullSisterFirst gives the full sister her fixed fraction out of rest, capped at rest,
// and returns what is left together with the paternal siblings who share it.
func (o *SpecialCaseOverrider) fullSisterFirst(st *allocation, base, rest *big.Rat, siblings []entities.FurudhItem) (*big.Rat, []entities.FurudhItem) {
	paternal := make([]entities.FurudhItem, 0, len(siblings))
	for _, s := range siblings {
		if s.Category != entities.FullSister {
			paternal = append(paternal, s)
			continue
		}
		entitled := new(big.Rat).Mul(s.Fraction.Rat(), base)
		if entitled.Cmp(rest) > 0 {
			entitled.Set(rest)
		}
		st.shares.Set(s.Category, entitled)
		st.notef("al-'Add: %s takes %s of the %s left by the grandfather", s.Category, entitled.RatString(), rest.RatString())
		rest = new(big.Rat).Sub(rest, entitled)
	}
	return rest, paternal
}

// splitRat divides an exact amount between items by residue weight without rescaling
func splitRat(st *allocation, amount *big.Rat, items []entities.FurudhItem) {
	var units int64
	for _, item := range items {
		units += item.Units()
	}
	for _, item := range items {
		if units == 0 {
			st.shares.Set(item.Category, new(big.Rat))
			continue
		}
		share := new(big.Rat).Mul(amount, big.NewRat(item.Units(), units))
		st.shares.Set(item.Category, share)
	}
}
