package entities

import (
	"fmt"
	"math/big"
)

// Fraction represents a fixed fractional entitlement such as 1/6
type Fraction struct {
	Num int64
	Den int64
}

// NewFraction creates a Fraction, rejecting zero or negative denominators
func NewFraction(num, den int64) (Fraction, error) {
	if den <= 0 {
		return Fraction{}, fmt.Errorf("fraction denominator must be positive, got %d", den)
	}
	if num < 0 {
		return Fraction{}, fmt.Errorf("fraction numerator cannot be negative, got %d", num)
	}
	return Fraction{Num: num, Den: den}, nil
}

// IsZero reports whether the fraction is unset
func (f Fraction) IsZero() bool {
	return f.Num == 0 || f.Den == 0
}

// Rat returns the fraction as an exact rational
func (f Fraction) Rat() *big.Rat {
	if f.Den == 0 {
		return new(big.Rat)
	}
	return big.NewRat(f.Num, f.Den)
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Common fixed fractions
var (
	Half      = Fraction{Num: 1, Den: 2}
	Third     = Fraction{Num: 1, Den: 3}
	Quarter   = Fraction{Num: 1, Den: 4}
	Sixth     = Fraction{Num: 1, Den: 6}
	Eighth    = Fraction{Num: 1, Den: 8}
	TwoThirds = Fraction{Num: 2, Den: 3}
)

// ResiduaryLabel is the fraction label shown for residuary heirs
const ResiduaryLabel = "Ashobah"

// ShareKind represents how a heir participates in the distribution
type ShareKind int

const (
	Fixed ShareKind = iota
	FixedAndResiduary
	Residuary
	SharesWithGrandfather
	Blocked
)

// String method for ShareKind enum
func (k ShareKind) String() string {
	switch k {
	case Fixed:
		return "Fixed"
	case FixedAndResiduary:
		return "FixedAndResiduary"
	case Residuary:
		return "Residuary"
	case SharesWithGrandfather:
		return "SharesWithGrandfather"
	case Blocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// Pool groups categories that split one fixed fraction per head
type Pool int

const (
	NoPool Pool = iota
	MaternalSiblingPool
	GrandmotherPool
)

// String method for Pool enum
func (p Pool) String() string {
	switch p {
	case NoPool:
		return "None"
	case MaternalSiblingPool:
		return "MaternalSiblings"
	case GrandmotherPool:
		return "Grandmothers"
	default:
		return "Unknown"
	}
}

// FurudhItem represents the entitlement assigned to one heir category for one calculation
type FurudhItem struct {
	Category      HeirCategory
	Quantity      int
	Kind          ShareKind
	Fraction      Fraction // for pooled items, the fraction of the whole pool
	Pool          Pool
	Label         string
	Justification string
}

// HasFixedShare reports whether the item carries a fixed fraction that enters the base number
func (f FurudhItem) HasFixedShare() bool {
	return (f.Kind == Fixed || f.Kind == FixedAndResiduary) && !f.Fraction.IsZero()
}

// IsResiduary reports whether the item takes part in the residue
func (f FurudhItem) IsResiduary() bool {
	return f.Kind == Residuary || f.Kind == FixedAndResiduary
}

// Units returns the residue weight of the whole group
func (f FurudhItem) Units() int64 {
	return f.Category.Weight() * int64(f.Quantity)
}

// Relation classifies two positive integers
type Relation int

const (
	Equal Relation = iota
	Subset
	CommonFactor
	Coprime
)

// String method for Relation enum
func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case Subset:
		return "subset"
	case CommonFactor:
		return "common-factor"
	case Coprime:
		return "coprime"
	default:
		return "Unknown"
	}
}

// ClassicalName returns the classical term for the relation
func (r Relation) ClassicalName() string {
	switch r {
	case Equal:
		return "Mumatsalah"
	case Subset:
		return "Mudakhalah"
	case CommonFactor:
		return "Muwafaqah"
	case Coprime:
		return "Mubayanah"
	default:
		return "Unknown"
	}
}

// ComparisonItem is the classified relation between two denominators
type ComparisonItem struct {
	A        int64
	B        int64
	Relation Relation
	GCD      int64
	LCM      int64
}

func (c ComparisonItem) String() string {
	return fmt.Sprintf("%d and %d: %s (%s), lcm %d", c.A, c.B, c.Relation, c.Relation.ClassicalName(), c.LCM)
}
