package faraid

import (
	"math/big"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// SpecialCaseOverrider recognises the classical heir-set patterns whose
// shares are not produced by the general rules, and rewrites the affected items.
// At most one pattern fires, checked in the order
// Akdariyyah, Gharrawain, Musytarakah, al-'Add, Jadd-wal-Ikhwah.
type SpecialCaseOverrider struct{}

// NewSpecialCaseOverrider creates a new special case overrider
func NewSpecialCaseOverrider() *SpecialCaseOverrider {
	return &SpecialCaseOverrider{}
}

// activeSet is the view of the non-blocked items used for signature matching
type activeSet map[entities.HeirCategory]entities.FurudhItem

func newActiveSet(items []entities.FurudhItem) activeSet {
	set := make(activeSet, len(items))
	for _, item := range items {
		if item.Kind != entities.Blocked {
			set[item.Category] = item
		}
	}
	return set
}

func (a activeSet) has(cs ...entities.HeirCategory) bool {
	for _, c := range cs {
		if _, ok := a[c]; !ok {
			return false
		}
	}
	return true
}

func (a activeSet) any(cs ...entities.HeirCategory) bool {
	for _, c := range cs {
		if _, ok := a[c]; ok {
			return true
		}
	}
	return false
}

func (a activeSet) quantity(c entities.HeirCategory) int {
	return a[c].Quantity
}

func (a activeSet) hasDescendant() bool {
	return a.any(entities.Son, entities.Daughter, entities.SonsSon, entities.SonsDaughter)
}

// Detect returns the pattern matched by the non-blocked items, if any
func (o *SpecialCaseOverrider) Detect(items []entities.FurudhItem) entities.SpecialCase {
	a := newActiveSet(items)

	switch {
	case o.isAkdariyyah(a):
		return entities.Akdariyyah
	case o.isGharrawain(a):
		return entities.Gharrawain
	case o.isMusytarakah(a):
		return entities.Musytarakah
	case o.isAlAdd(a):
		return entities.AlAdd
	case o.isJaddWalIkhwah(a):
		return entities.JaddWalIkhwah
	}
	return entities.NoSpecialCase
}

func (o *SpecialCaseOverrider) isAkdariyyah(a activeSet) bool {
	if len(a) != 4 || !a.has(entities.Husband, entities.Mother, entities.Grandfather) {
		return false
	}
	for _, sister := range []entities.HeirCategory{entities.FullSister, entities.PaternalSister} {
		if a.has(sister) && a.quantity(sister) == 1 {
			return true
		}
	}
	return false
}

func (o *SpecialCaseOverrider) isGharrawain(a activeSet) bool {
	if len(a) != 3 || !a.has(entities.Mother, entities.Father) || !a.any(entities.Husband, entities.Wife) {
		return false
	}
	return a[entities.Mother].Fraction == entities.Third
}

func (o *SpecialCaseOverrider) isMusytarakah(a activeSet) bool {
	if !a.has(entities.Husband, entities.FullBrother) {
		return false
	}
	if !a.any(entities.Mother, entities.MaternalGrandmother) {
		return false
	}
	return a.quantity(entities.MaternalBrother)+a.quantity(entities.MaternalSister) >= 2
}

func (o *SpecialCaseOverrider) isAlAdd(a activeSet) bool {
	if !a.has(entities.Grandfather, entities.FullSister) || a.hasDescendant() {
		return false
	}
	if a.any(entities.Father, entities.FullBrother) {
		return false
	}
	return a.any(entities.PaternalBrother, entities.PaternalSister)
}

func (o *SpecialCaseOverrider) isJaddWalIkhwah(a activeSet) bool {
	if !a.has(entities.Grandfather) || a.hasDescendant() || a.has(entities.Father) {
		return false
	}
	return a.any(entities.FullBrother, entities.PaternalBrother, entities.FullSister, entities.PaternalSister)
}

// Apply rewrites the items affected by the pattern. Items of other heirs are returned unchanged.
func (o *SpecialCaseOverrider) Apply(special entities.SpecialCase, items []entities.FurudhItem) []entities.FurudhItem {
	out := make([]entities.FurudhItem, len(items))
	copy(out, items)

	for i := range out {
		item := &out[i]
		if item.Kind == entities.Blocked {
			continue
		}
		switch special {
		case entities.Gharrawain:
			o.applyGharrawain(item, items)
		case entities.Musytarakah:
			o.applyMusytarakah(item)
		case entities.Akdariyyah:
			o.applyAkdariyyah(item)
		case entities.AlAdd, entities.JaddWalIkhwah:
			o.applyGrandfatherSharing(special, item)
		}
	}
	return out
}

func (o *SpecialCaseOverrider) applyGharrawain(item *entities.FurudhItem, items []entities.FurudhItem) {
	if item.Category != entities.Mother {
		return
	}
	spouse := entities.Half
	for _, other := range items {
		if other.Category.IsSpouse() {
			spouse = other.Fraction
		}
	}
	// one third of (1 - spouse)
	f := new(big.Rat).Sub(big.NewRat(1, 1), spouse.Rat())
	f.Mul(f, big.NewRat(1, 3))
	item.Fraction = entities.Fraction{Num: f.Num().Int64(), Den: f.Denom().Int64()}
	item.Label = "1/3 of remainder"
	item.Justification = "Gharrawain: one third of what remains after the spouse"
}

func (o *SpecialCaseOverrider) applyMusytarakah(item *entities.FurudhItem) {
	switch item.Category {
	case entities.FullBrother, entities.FullSister:
		item.Kind = entities.Fixed
		item.Fraction = entities.Third
		item.Pool = entities.MaternalSiblingPool
		item.Label = "1/3 (shared)"
		item.Justification = "Musytarakah: shares the maternal siblings' 1/3 equally per head"
	case entities.MaternalBrother, entities.MaternalSister:
		item.Label = "1/3 (shared)"
		item.Justification = "Musytarakah: 1/3 shared equally with the full siblings"
	}
}

func (o *SpecialCaseOverrider) applyAkdariyyah(item *entities.FurudhItem) {
	switch item.Category {
	case entities.Grandfather:
		item.Kind = entities.Fixed
		item.Fraction = entities.Sixth
		item.Label = "1/6, pooled with sister"
		item.Justification = "Akdariyyah: 1/6 pooled with the sister and split 2:1"
	case entities.FullSister, entities.PaternalSister:
		item.Kind = entities.Fixed
		item.Fraction = entities.Half
		item.Label = "1/2, pooled with grandfather"
		item.Justification = "Akdariyyah: 1/2 pooled with the grandfather and split 2:1"
	case entities.Husband, entities.Mother:
		item.Justification = "Akdariyyah: " + item.Justification
	}
}

func (o *SpecialCaseOverrider) applyGrandfatherSharing(special entities.SpecialCase, item *entities.FurudhItem) {
	switch item.Category {
	case entities.Grandfather:
		item.Kind = entities.SharesWithGrandfather
		item.Fraction = entities.Fraction{}
		item.Label = "best of muqasamah, 1/3, 1/6"
		item.Justification = special.String() + ": the most favourable of sharing, one third or one sixth"
	case entities.FullBrother, entities.PaternalBrother:
		item.Kind = entities.SharesWithGrandfather
		item.Fraction = entities.Fraction{}
		item.Label = entities.ResiduaryLabel
		item.Justification = special.String() + ": shares what the grandfather leaves (2:1)"
	case entities.FullSister, entities.PaternalSister:
		item.Kind = entities.SharesWithGrandfather
		if special == entities.AlAdd && item.Category == entities.FullSister {
			item.Justification = "al-'Add: takes her fixed share out of what the grandfather leaves"
			return
		}
		item.Fraction = entities.Fraction{}
		item.Label = entities.ResiduaryLabel
		item.Justification = special.String() + ": shares what the grandfather leaves (2:1)"
	}
}

// RecombineAkdariyyah pools the grandfather's and sister's shares after the increase
// correction and splits them 2:1, rescaling until both are whole.
func (o *SpecialCaseOverrider) RecombineAkdariyyah(st *allocation) {
	sister := entities.FullSister
	if st.has(entities.PaternalSister) {
		sister = entities.PaternalSister
	}

	pool := st.shares.Get(entities.Grandfather)
	pool.Add(pool, st.shares.Get(sister))
	total, _ := ratToInt(pool)

	st.shares.SetInt(entities.Grandfather, 0)
	st.shares.SetInt(sister, 0)

	gf, _ := st.item(entities.Grandfather)
	sis, _ := st.item(sister)
	st.splitAmong("Akdariyyah", total, []entities.FurudhItem{gf, sis}, weightUnits)
	st.notef("Akdariyyah: grandfather and sister pool their shares and split them 2:1, base %d", st.base)
}
