package dto

import (
	"github.com/vsinha/faraid/pkg/application/services/orchestration"
)

// ScenarioResult is one resolution of the uncertain heir
type ScenarioResult struct {
	Name   string             `json:"name"`
	Error  string             `json:"error,omitempty"`
	Result *CalculationResult `json:"result,omitempty"`
}

// CertainAllocation is the amount a certain heir can be paid immediately
type CertainAllocation struct {
	CategoryID  int      `json:"category_id"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	Minimum     string   `json:"minimum"`
	PerScenario []string `json:"per_scenario"`
}

// ScenarioComparisonResult is the serialized form of a mauquf calculation
type ScenarioComparisonResult struct {
	EstateValue string              `json:"estate_value"`
	Currency    string              `json:"currency,omitempty"`
	Uncertain   string              `json:"uncertain"`
	Status      string              `json:"uncertain_status"`
	Scenarios   []ScenarioResult    `json:"scenarios"`
	Certain     []CertainAllocation `json:"certain"`
	Suspended   string              `json:"suspended"`
}

// FromComparison converts a scenario comparison
func FromComparison(c *orchestration.ScenarioComparison, currency string, precision int32) ScenarioComparisonResult {
	out := ScenarioComparisonResult{
		EstateValue: c.Estate.StringFixed(precision),
		Currency:    currency,
		Uncertain:   c.Uncertain.Category.String(),
		Status:      c.Uncertain.Status.String(),
		Scenarios:   make([]ScenarioResult, 0, len(c.Outcomes)),
		Certain:     make([]CertainAllocation, 0, len(c.Certain)),
		Suspended:   c.Suspended.StringFixed(precision),
	}
	for _, o := range c.Outcomes {
		sr := ScenarioResult{Name: o.Scenario.Name}
		if o.Err != nil {
			sr.Error = o.Err.Error()
		} else {
			r := FromResult(o.Result, currency, precision)
			sr.Result = &r
		}
		out.Scenarios = append(out.Scenarios, sr)
	}
	for _, a := range c.Certain {
		ca := CertainAllocation{
			CategoryID:  int(a.Category),
			Category:    a.Category.String(),
			Quantity:    a.Quantity,
			Minimum:     a.Minimum.StringFixed(precision),
			PerScenario: make([]string, 0, len(a.PerScenario)),
		}
		for i, amount := range a.PerScenario {
			if c.Outcomes[i].Err != nil {
				ca.PerScenario = append(ca.PerScenario, "")
				continue
			}
			ca.PerScenario = append(ca.PerScenario, amount.StringFixed(precision))
		}
		out.Certain = append(out.Certain, ca)
	}
	return out
}

// ChainShareResult is one line of the combined problem
type ChainShareResult struct {
	Problem    int    `json:"problem"`
	CategoryID int    `json:"category_id"`
	Category   string `json:"category"`
	Quantity   int    `json:"quantity"`
	ShareCount int64  `json:"share_count"`
	Amount     string `json:"amount"`
	AmountEach string `json:"amount_each"`
}

// ChainResult is the serialized form of a munasakhot calculation
type ChainResult struct {
	EstateValue      string             `json:"estate_value"`
	Currency         string             `json:"currency,omitempty"`
	First            CalculationResult  `json:"first"`
	Second           CalculationResult  `json:"second"`
	SecondDeceased   string             `json:"second_deceased"`
	DeceasedShare    int64              `json:"deceased_share"`
	Relation         string             `json:"relation"`
	FirstMultiplier  int64              `json:"first_multiplier"`
	SecondMultiplier int64              `json:"second_multiplier"`
	CombinedBase     int64              `json:"combined_base"`
	Shares           []ChainShareResult `json:"shares"`
}

// FromChain converts a chained-succession result
func FromChain(c *orchestration.ChainResult, currency string, precision int32) ChainResult {
	out := ChainResult{
		EstateValue:      c.Estate.StringFixed(precision),
		Currency:         currency,
		First:            FromResult(c.First, currency, precision),
		Second:           FromResult(c.Second, currency, precision),
		SecondDeceased:   c.Deceased.String(),
		DeceasedShare:    c.DeceasedShare,
		Relation:         c.Comparison.Relation.String(),
		FirstMultiplier:  c.FirstMultiplier,
		SecondMultiplier: c.SecondMultiplier,
		CombinedBase:     c.CombinedBase,
		Shares:           make([]ChainShareResult, 0, len(c.Shares)),
	}
	for _, s := range c.Shares {
		out.Shares = append(out.Shares, ChainShareResult{
			Problem:    s.Problem,
			CategoryID: int(s.Category),
			Category:   s.Category.String(),
			Quantity:   s.Quantity,
			ShareCount: s.Share,
			Amount:     s.Amount.StringFixed(precision),
			AmountEach: s.AmountEach.StringFixed(precision),
		})
	}
	return out
}

// BatchResult is the serialized form of a gharqa batch
type BatchResult struct {
	Problems []NamedResult `json:"problems"`
}

// NamedResult pairs a batch problem name with its calculation
type NamedResult struct {
	Name   string            `json:"name"`
	Result CalculationResult `json:"result"`
}
