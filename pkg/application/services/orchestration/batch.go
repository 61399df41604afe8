package orchestration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

// Problem is one independent estate of a simultaneous-death (gharqa) batch
type Problem struct {
	Name   string
	Estate decimal.Decimal
	Heirs  []entities.HeirInput
}

// RunBatch computes every problem independently and concurrently. None of the
// deceased inherit from each other. Results keep the input order; the first
// failure cancels the remaining problems.
func (o *SuccessionOrchestrator) RunBatch(ctx context.Context, problems []Problem) ([]*entities.CalculationResult, error) {
	if len(problems) == 0 {
		return nil, fmt.Errorf("no problems provided for the batch")
	}

	results := make([]*entities.CalculationResult, len(problems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, p := range problems {
		g.Go(func() error {
			result, err := o.calculator.Calculate(gctx, p.Estate, p.Heirs)
			if err != nil {
				return fmt.Errorf("problem %d (%s): %w", i+1, p.Name, err)
			}
			results[i] = result
			o.logger.Debug("batch problem calculated", zap.String("problem", p.Name), zap.String("calculation_id", result.ID))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
