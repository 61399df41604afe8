package faraid

import (
	"fmt"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// heirSet indexes a validated request for rule evaluation.
// Heirs carrying a blocking attribute are not considered present.
type heirSet struct {
	inputs  []entities.HeirInput
	present map[entities.HeirCategory]int
}

func newHeirSet(inputs []entities.HeirInput) *heirSet {
	s := &heirSet{
		inputs:  inputs,
		present: make(map[entities.HeirCategory]int, len(inputs)),
	}
	for _, in := range inputs {
		if in.IsDisqualified() {
			continue
		}
		s.present[in.Category] += in.Quantity
	}
	return s
}

func (s *heirSet) has(c entities.HeirCategory) bool {
	return s.present[c] > 0
}

func (s *heirSet) count(c entities.HeirCategory) int {
	return s.present[c]
}

// first returns the first present category among cs
func (s *heirSet) first(cs ...entities.HeirCategory) (entities.HeirCategory, bool) {
	for _, c := range cs {
		if s.has(c) {
			return c, true
		}
	}
	return 0, false
}

func (s *heirSet) hasMaleDescendant() bool {
	return s.has(entities.Son) || s.has(entities.SonsSon)
}

func (s *heirSet) hasFemaleDescendant() bool {
	return s.has(entities.Daughter) || s.has(entities.SonsDaughter)
}

func (s *heirSet) hasDescendant() bool {
	return s.hasMaleDescendant() || s.hasFemaleDescendant()
}

// siblingCount counts siblings of every kind, including those blocked by kinship
func (s *heirSet) siblingCount() int {
	n := 0
	for c, q := range s.present {
		if c.IsSibling() {
			n += q
		}
	}
	return n
}

// fullSisterWithOthers reports whether full sisters take the residue alongside daughters
func (s *heirSet) fullSisterWithOthers() bool {
	return s.has(entities.FullSister) && s.hasFemaleDescendant() &&
		!s.hasMaleDescendant() && !s.has(entities.Father)
}

// paternalSisterWithOthers reports whether paternal sisters take the residue alongside daughters
func (s *heirSet) paternalSisterWithOthers() bool {
	if !s.has(entities.PaternalSister) || !s.hasFemaleDescendant() {
		return false
	}
	_, blocked := s.blocker(entities.PaternalSister)
	return !blocked
}

func isCollateral(c entities.HeirCategory) bool {
	switch c {
	case entities.FullBrothersSon, entities.PaternalBrothersSon, entities.FullUncle,
		entities.PaternalUncle, entities.FullUnclesSon, entities.PaternalUnclesSon:
		return true
	}
	return false
}

func agnaticRank(c entities.HeirCategory) int {
	for i, a := range entities.AgnaticOrder {
		if a == c {
			return i
		}
	}
	return -1
}

// blocker returns the reason a present category is excluded by kinship, if it is
func (s *heirSet) blocker(c entities.HeirCategory) (string, bool) {
	by := func(b entities.HeirCategory) (string, bool) {
		return fmt.Sprintf("blocked by %s", b), true
	}

	switch c {
	case entities.Grandfather:
		if s.has(entities.Father) {
			return by(entities.Father)
		}
	case entities.PaternalGrandmother:
		if b, ok := s.first(entities.Mother, entities.Father); ok {
			return by(b)
		}
	case entities.MaternalGrandmother:
		if s.has(entities.Mother) {
			return by(entities.Mother)
		}
	case entities.SonsDaughter:
		if s.has(entities.Son) {
			return by(entities.Son)
		}
		if s.count(entities.Daughter) >= 2 && !s.has(entities.SonsSon) {
			return "blocked by two or more Daughters", true
		}
	case entities.MaternalBrother, entities.MaternalSister:
		if b, ok := s.first(entities.Son, entities.Daughter, entities.SonsSon, entities.SonsDaughter,
			entities.Father, entities.Grandfather); ok {
			return by(b)
		}
	case entities.FullSister:
		if b, ok := s.first(entities.Son, entities.SonsSon, entities.Father); ok {
			return by(b)
		}
	case entities.PaternalSister:
		if b, ok := s.first(entities.Son, entities.SonsSon, entities.Father, entities.FullBrother); ok {
			return by(b)
		}
		if s.count(entities.FullSister) >= 2 && !s.has(entities.PaternalBrother) {
			return "blocked by two or more Full Sisters", true
		}
		if s.fullSisterWithOthers() {
			return "blocked by Full Sister inheriting the residue with daughters", true
		}
	case entities.Emancipator, entities.Emancipatrix:
		if s.has(entities.Father) {
			return by(entities.Father)
		}
		if s.has(entities.Grandfather) {
			return by(entities.Grandfather)
		}
		for _, a := range entities.AgnaticOrder {
			if s.has(a) {
				return by(a)
			}
		}
		if s.fullSisterWithOthers() {
			return "blocked by Full Sister inheriting the residue with daughters", true
		}
		if s.paternalSisterWithOthers() {
			return "blocked by Paternal Half-Sister inheriting the residue with daughters", true
		}
	}

	rank := agnaticRank(c)
	if rank < 0 {
		return "", false
	}

	if c == entities.FullBrother || c == entities.PaternalBrother || isCollateral(c) {
		if s.has(entities.Father) {
			return by(entities.Father)
		}
	}
	if isCollateral(c) && s.has(entities.Grandfather) {
		return by(entities.Grandfather)
	}
	for _, stronger := range entities.AgnaticOrder[:rank] {
		if s.has(stronger) {
			return by(stronger)
		}
	}
	if (c == entities.PaternalBrother || isCollateral(c)) && s.fullSisterWithOthers() {
		return "blocked by Full Sister inheriting the residue with daughters", true
	}
	if isCollateral(c) && s.paternalSisterWithOthers() {
		return "blocked by Paternal Half-Sister inheriting the residue with daughters", true
	}
	return "", false
}
