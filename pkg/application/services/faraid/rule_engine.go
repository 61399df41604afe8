package faraid

import (
	"fmt"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// RuleEngine applies the blocking predicates and assigns each heir a fixed
// fraction or a residuary marker. It is a pure function of its input.
type RuleEngine struct{}

// NewRuleEngine creates a new rule engine
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

// Assign returns one FurudhItem per request line, in request order.
// Blocked heirs are returned with Kind Blocked and no fraction.
func (re *RuleEngine) Assign(heirs []entities.HeirInput) []entities.FurudhItem {
	set := newHeirSet(heirs)
	items := make([]entities.FurudhItem, 0, len(heirs))

	for _, h := range heirs {
		if h.IsDisqualified() {
			items = append(items, blockedItem(h, fmt.Sprintf("disqualified: %s", h.BlockingReason)))
			continue
		}
		if reason, blocked := set.blocker(h.Category); blocked {
			items = append(items, blockedItem(h, reason))
			continue
		}
		items = append(items, re.assign(set, h))
	}
	return items
}

func blockedItem(h entities.HeirInput, reason string) entities.FurudhItem {
	return entities.FurudhItem{
		Category:      h.Category,
		Quantity:      h.Quantity,
		Kind:          entities.Blocked,
		Label:         "Mahjub",
		Justification: reason,
	}
}

func fixedItem(h entities.HeirInput, f entities.Fraction, why string) entities.FurudhItem {
	return entities.FurudhItem{
		Category:      h.Category,
		Quantity:      h.Quantity,
		Kind:          entities.Fixed,
		Fraction:      f,
		Label:         f.String(),
		Justification: why,
	}
}

func residuaryItem(h entities.HeirInput, why string) entities.FurudhItem {
	return entities.FurudhItem{
		Category:      h.Category,
		Quantity:      h.Quantity,
		Kind:          entities.Residuary,
		Label:         entities.ResiduaryLabel,
		Justification: why,
	}
}

// halfOrTwoThirds is the entitlement of daughters and sisters inheriting alone
func halfOrTwoThirds(h entities.HeirInput, what string) entities.FurudhItem {
	if h.Quantity == 1 {
		return fixedItem(h, entities.Half, fmt.Sprintf("a single %s takes 1/2", what))
	}
	return fixedItem(h, entities.TwoThirds, fmt.Sprintf("%d %ss share 2/3", h.Quantity, what))
}

func (re *RuleEngine) assign(s *heirSet, h entities.HeirInput) entities.FurudhItem {
	switch h.Category {
	case entities.Husband:
		if s.hasDescendant() {
			return fixedItem(h, entities.Quarter, "the deceased left a descendant")
		}
		return fixedItem(h, entities.Half, "the deceased left no descendant")

	case entities.Wife:
		if s.hasDescendant() {
			return fixedItem(h, entities.Eighth, "the deceased left a descendant")
		}
		return fixedItem(h, entities.Quarter, "the deceased left no descendant")

	case entities.Mother:
		if s.hasDescendant() {
			return fixedItem(h, entities.Sixth, "the deceased left a descendant")
		}
		if s.siblingCount() >= 2 {
			return fixedItem(h, entities.Sixth, "the deceased left two or more siblings")
		}
		return fixedItem(h, entities.Third, "no descendant and fewer than two siblings")

	case entities.Father, entities.Grandfather:
		switch {
		case s.hasMaleDescendant():
			return fixedItem(h, entities.Sixth, "the deceased left a male descendant")
		case s.hasFemaleDescendant():
			item := fixedItem(h, entities.Sixth, "only female descendants: 1/6 plus the residue")
			item.Kind = entities.FixedAndResiduary
			item.Label = "1/6 + " + entities.ResiduaryLabel
			return item
		default:
			return residuaryItem(h, "no descendant: takes the residue")
		}

	case entities.Daughter:
		if s.has(entities.Son) {
			return residuaryItem(h, "residuary together with Son (2:1)")
		}
		return halfOrTwoThirds(h, "daughter")

	case entities.SonsDaughter:
		if s.has(entities.SonsSon) {
			return residuaryItem(h, "residuary together with Son's Son (2:1)")
		}
		if s.count(entities.Daughter) == 1 {
			return fixedItem(h, entities.Sixth, "completes 2/3 with a single Daughter")
		}
		return halfOrTwoThirds(h, "son's daughter")

	case entities.MaternalBrother, entities.MaternalSister:
		heads := s.count(entities.MaternalBrother) + s.count(entities.MaternalSister)
		if heads == 1 {
			item := fixedItem(h, entities.Sixth, "a single maternal half-sibling takes 1/6")
			item.Pool = entities.MaternalSiblingPool
			return item
		}
		item := fixedItem(h, entities.Third, fmt.Sprintf("%d maternal half-siblings share 1/3 per head", heads))
		item.Pool = entities.MaternalSiblingPool
		item.Label = "1/3 (shared)"
		return item

	case entities.MaternalGrandmother, entities.PaternalGrandmother:
		item := fixedItem(h, entities.Sixth, "grandmother takes 1/6")
		item.Pool = entities.GrandmotherPool
		other := entities.PaternalGrandmother
		if h.Category == entities.PaternalGrandmother {
			other = entities.MaternalGrandmother
		}
		if _, blocked := s.blocker(other); s.has(other) && !blocked {
			item.Label = "1/6 (shared)"
			item.Justification = "both grandmothers share 1/6"
		}
		return item

	case entities.FullSister:
		if s.hasFemaleDescendant() {
			return residuaryItem(h, "residuary with the female descendants")
		}
		if s.has(entities.FullBrother) {
			return residuaryItem(h, "residuary together with Full Brother (2:1)")
		}
		return halfOrTwoThirds(h, "full sister")

	case entities.PaternalSister:
		if s.hasFemaleDescendant() {
			return residuaryItem(h, "residuary with the female descendants")
		}
		if s.has(entities.PaternalBrother) {
			return residuaryItem(h, "residuary together with Paternal Half-Brother (2:1)")
		}
		if s.count(entities.FullSister) == 1 {
			return fixedItem(h, entities.Sixth, "completes 2/3 with a single Full Sister")
		}
		return halfOrTwoThirds(h, "paternal half-sister")

	default:
		return residuaryItem(h, "agnatic heir: takes the residue")
	}
}
