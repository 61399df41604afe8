package dto

import (
	"github.com/vsinha/faraid/pkg/domain/entities"
)

// HeirResult is the output record of one heir line
type HeirResult struct {
	CategoryID    int    `json:"category_id"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	FractionLabel string `json:"fraction_label"`
	ShareCount    int64  `json:"share_count"`
	Blocked       bool   `json:"blocked"`
	Justification string `json:"justification"`
	Amount        string `json:"amount"`
	AmountEach    string `json:"amount_each"`
}

// Comparison is one pairwise relation step
type Comparison struct {
	A        int64  `json:"a"`
	B        int64  `json:"b"`
	Relation string `json:"relation"`
	LCM      int64  `json:"lcm"`
}

// CalculationResult is the serialized form of a finished calculation
type CalculationResult struct {
	CalculationID     string       `json:"calculation_id"`
	EstateValue       string       `json:"estate_value"`
	Currency          string       `json:"currency,omitempty"`
	BaseNumberInitial int64        `json:"base_number_initial"`
	BaseNumberFinal   int64        `json:"base_number_final"`
	Status            string       `json:"status"`
	SpecialCase       string       `json:"special_case,omitempty"`
	Notes             []string     `json:"notes"`
	Comparisons       []Comparison `json:"comparisons,omitempty"`
	Heirs             []HeirResult `json:"heirs"`
}

// FromResult converts a domain result, rounding amounts to precision places
func FromResult(r *entities.CalculationResult, currency string, precision int32) CalculationResult {
	out := CalculationResult{
		CalculationID:     r.ID,
		EstateValue:       r.Estate.StringFixed(precision),
		Currency:          currency,
		BaseNumberInitial: r.Base.Initial,
		BaseNumberFinal:   r.Base.Final,
		Status:            r.Status.String(),
		SpecialCase:       r.SpecialCase.String(),
		Notes:             append([]string(nil), r.Notes...),
		Heirs:             make([]HeirResult, 0, len(r.Heirs)),
	}
	for _, c := range r.Comparisons {
		out.Comparisons = append(out.Comparisons, Comparison{A: c.A, B: c.B, Relation: c.Relation.String(), LCM: c.LCM})
	}
	for _, h := range r.Heirs {
		out.Heirs = append(out.Heirs, HeirResult{
			CategoryID:    int(h.Category),
			Category:      h.Category.String(),
			Quantity:      h.Quantity,
			FractionLabel: h.FractionLabel,
			ShareCount:    h.Share,
			Blocked:       h.Blocked,
			Justification: h.Justification,
			Amount:        h.Amount.StringFixed(precision),
			AmountEach:    h.AmountEach.StringFixed(precision),
		})
	}
	return out
}
