package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status records which corrections a calculation went through.
// The zero value means the shares balanced without correction.
type Status uint8

const (
	StatusIncrease Status = 1 << iota
	StatusShortfall
	StatusShortfallWithSpouse
	StatusIndivisibilityCorrected
	StatusEmpty
)

// Balanced is the status of a calculation that needed no correction
const Balanced Status = 0

// Has reports whether every flag in f is set
func (s Status) Has(f Status) bool {
	return s&f == f
}

// String joins the status labels, e.g. "Increase, Indivisibility-corrected"
func (s Status) String() string {
	if s == Balanced {
		return "Balanced"
	}
	labels := make([]string, 0, 3)
	if s.Has(StatusEmpty) {
		labels = append(labels, "Empty")
	}
	if s.Has(StatusIncrease) {
		labels = append(labels, "Increase")
	}
	if s.Has(StatusShortfall) {
		labels = append(labels, "Shortfall")
	}
	if s.Has(StatusShortfallWithSpouse) {
		labels = append(labels, "Shortfall-with-spouse")
	}
	if s.Has(StatusIndivisibilityCorrected) {
		labels = append(labels, "Indivisibility-corrected")
	}
	return strings.Join(labels, ", ")
}

// SpecialCase names the classical heir-set pattern that overrode the normal rules
type SpecialCase int

const (
	NoSpecialCase SpecialCase = iota
	Akdariyyah
	Gharrawain
	Musytarakah
	AlAdd
	JaddWalIkhwah
)

// String method for SpecialCase enum
func (s SpecialCase) String() string {
	switch s {
	case NoSpecialCase:
		return ""
	case Akdariyyah:
		return "Akdariyyah"
	case Gharrawain:
		return "Gharrawain"
	case Musytarakah:
		return "Musytarakah"
	case AlAdd:
		return "al-'Add"
	case JaddWalIkhwah:
		return "Jadd-wal-Ikhwah"
	default:
		return "Unknown"
	}
}

// BaseNumber is the common denominator before and after the final corrections
type BaseNumber struct {
	Initial int64
	Final   int64
}

// HeirShare is the final record of one heir category
type HeirShare struct {
	Category      HeirCategory
	Quantity      int
	FractionLabel string
	Share         int64
	Blocked       bool
	Justification string
	Amount        decimal.Decimal
	AmountEach    decimal.Decimal
}

// CalculationResult contains the complete output of one allocation run
type CalculationResult struct {
	ID          string
	Estate      decimal.Decimal
	Base        BaseNumber
	Status      Status
	SpecialCase SpecialCase
	Notes       []string
	Comparisons []ComparisonItem
	Heirs       []HeirShare
}

// Heir returns the record for a category, if present
func (r *CalculationResult) Heir(category HeirCategory) (HeirShare, bool) {
	for _, h := range r.Heirs {
		if h.Category == category {
			return h, true
		}
	}
	return HeirShare{}, false
}

// TotalShares returns the sum of all share counts
func (r *CalculationResult) TotalShares() int64 {
	var total int64
	for _, h := range r.Heirs {
		total += h.Share
	}
	return total
}
