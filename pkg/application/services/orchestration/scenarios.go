package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// Scenario is one resolution of the uncertain heir
type Scenario struct {
	Name  string
	Heirs []entities.HeirInput
}

// ScenarioOutcome is the calculation of one scenario. Err is set when the
// scenario's heir set was rejected; such scenarios are left out of the minimums.
type ScenarioOutcome struct {
	Scenario Scenario
	Result   *entities.CalculationResult
	Err      error
}

// CertainHeirAllocation is what a certain heir can be paid before the uncertainty is resolved
type CertainHeirAllocation struct {
	Category    entities.HeirCategory
	Quantity    int
	Minimum     decimal.Decimal
	PerScenario []decimal.Decimal // aligned with ScenarioComparison.Outcomes
}

// ScenarioComparison is the outcome of a suspended-share (mauquf) calculation
type ScenarioComparison struct {
	Estate    decimal.Decimal
	Uncertain entities.HeirInput
	Outcomes  []ScenarioOutcome
	Certain   []CertainHeirAllocation
	Suspended decimal.Decimal
}

// BuildScenarios expands the single uncertain heir in heirs into its possible
// resolutions. It returns the scenarios, the uncertain line and the certain lines.
func BuildScenarios(heirs []entities.HeirInput) ([]Scenario, entities.HeirInput, []entities.HeirInput, error) {
	var uncertain *entities.HeirInput
	certain := make([]entities.HeirInput, 0, len(heirs))
	for i := range heirs {
		if heirs[i].Status == entities.Certain {
			certain = append(certain, heirs[i])
			continue
		}
		if uncertain != nil {
			return nil, entities.HeirInput{}, nil, fmt.Errorf("only one uncertain heir is supported, found %s and %s",
				uncertain.Category, heirs[i].Category)
		}
		uncertain = &heirs[i]
	}
	if uncertain == nil {
		return nil, entities.HeirInput{}, nil, fmt.Errorf("no heir is marked mafqud, khuntsa or haml")
	}

	u := *uncertain
	switch u.Status {
	case entities.Missing:
		return []Scenario{
			{Name: "alive", Heirs: mergeLine(certain, u.Category, u.Quantity)},
			{Name: "dead", Heirs: certain},
		}, u, certain, nil

	case entities.Intersex:
		male, female, ok := u.Category.SexForms()
		if !ok {
			return nil, u, nil, fmt.Errorf("%s cannot be khuntsa", u.Category)
		}
		return []Scenario{
			{Name: "male", Heirs: mergeLine(certain, male, u.Quantity)},
			{Name: "female", Heirs: mergeLine(certain, female, u.Quantity)},
		}, u, certain, nil

	case entities.Unborn:
		male, female, ok := u.Category.SexForms()
		if !ok {
			return nil, u, nil, fmt.Errorf("%s cannot be haml", u.Category)
		}
		return []Scenario{
			{Name: "none", Heirs: certain},
			{Name: "one son", Heirs: mergeLine(certain, male, 1)},
			{Name: "one daughter", Heirs: mergeLine(certain, female, 1)},
			{Name: "two sons", Heirs: mergeLine(certain, male, 2)},
			{Name: "two daughters", Heirs: mergeLine(certain, female, 2)},
			{Name: "son and daughter", Heirs: mergeLine(mergeLine(certain, male, 1), female, 1)},
		}, u, certain, nil
	}
	return nil, u, nil, fmt.Errorf("unsupported heir status %s", u.Status)
}

// CompareScenarios runs every resolution of the uncertain heir concurrently and
// reserves, per certain heir, the smallest amount it receives in any valid scenario.
// Everything else stays suspended until the uncertainty is resolved.
func (o *SuccessionOrchestrator) CompareScenarios(
	ctx context.Context,
	estate decimal.Decimal,
	heirs []entities.HeirInput,
) (*ScenarioComparison, error) {
	scenarios, uncertain, certain, err := BuildScenarios(heirs)
	if err != nil {
		return nil, fmt.Errorf("failed to build scenarios: %w", err)
	}

	// Step 1: run every scenario
	outcomes := make([]ScenarioOutcome, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			result, err := o.calculator.Calculate(gctx, estate, sc.Heirs)
			outcomes[i] = ScenarioOutcome{Scenario: sc, Result: result}
			if err != nil {
				if !errors.Is(err, entities.ErrInvalidInput) {
					return fmt.Errorf("scenario %q: %w", sc.Name, err)
				}
				outcomes[i].Err = err
				o.logger.Debug("scenario skipped", zap.String("scenario", sc.Name), zap.Error(err))
				return nil
			}
			o.logger.Debug("scenario calculated",
				zap.String("scenario", sc.Name),
				zap.String("heirs", describeHeirs(sc.Heirs)),
				zap.Int64("base_final", result.Base.Final),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid := 0
	for _, out := range outcomes {
		if out.Err == nil {
			valid++
		}
	}
	if valid == 0 {
		return nil, fmt.Errorf("no valid scenario for the uncertain %s: %w", uncertain.Category, outcomes[0].Err)
	}

	// Step 2: minimum per certain heir across valid scenarios
	comparison := &ScenarioComparison{
		Estate:    estate,
		Uncertain: uncertain,
		Outcomes:  outcomes,
		Certain:   make([]CertainHeirAllocation, 0, len(certain)),
	}
	reserved := decimal.Zero
	for _, h := range certain {
		alloc := CertainHeirAllocation{
			Category:    h.Category,
			Quantity:    h.Quantity,
			PerScenario: make([]decimal.Decimal, len(outcomes)),
		}
		first := true
		for i, out := range outcomes {
			if out.Err != nil {
				continue
			}
			amount := certainAmount(out.Result, h)
			alloc.PerScenario[i] = amount
			if first || amount.LessThan(alloc.Minimum) {
				alloc.Minimum = amount
				first = false
			}
		}
		reserved = reserved.Add(alloc.Minimum)
		comparison.Certain = append(comparison.Certain, alloc)
	}

	// Step 3: whatever is not paid out is suspended
	comparison.Suspended = estate.Sub(reserved)
	return comparison, nil
}

// certainAmount is the part of a result that belongs to the certain heads of h,
// which may share a line with the resolved uncertain heir
func certainAmount(result *entities.CalculationResult, h entities.HeirInput) decimal.Decimal {
	if h.IsDisqualified() {
		return decimal.Zero
	}
	record, ok := result.Heir(h.Category)
	if !ok || record.Blocked {
		return decimal.Zero
	}
	if record.Quantity == h.Quantity {
		return record.Amount
	}
	return record.AmountEach.Mul(decimal.NewFromInt(int64(h.Quantity)))
}
