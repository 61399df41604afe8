package orchestration

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/application/services/faraid"
	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/services"
)

// Calculator runs one allocation. *faraid.CalculatorService satisfies it.
type Calculator interface {
	Calculate(ctx context.Context, estate decimal.Decimal, heirs []entities.HeirInput) (*entities.CalculationResult, error)
}

// Config holds configuration for the succession orchestrator
type Config struct {
	// Workers bounds how many calculations run at once; zero means one per CPU
	Workers int
	// AmountPrecision is used when amounts are recomputed on a combined base
	AmountPrecision int32
	Logger          *zap.Logger
}

// SuccessionOrchestrator drives the calculator over several related problems:
// uncertain-heir scenarios, chained deaths and simultaneous deaths.
type SuccessionOrchestrator struct {
	calculator   Calculator
	classifier   *services.RelationClassifier
	materializer *faraid.AmountMaterializer
	logger       *zap.Logger
	workers      int
}

// NewSuccessionOrchestrator creates a new succession orchestrator
func NewSuccessionOrchestrator(calculator Calculator, config Config) *SuccessionOrchestrator {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuccessionOrchestrator{
		calculator:   calculator,
		classifier:   services.NewRelationClassifier(),
		materializer: faraid.NewAmountMaterializer(config.AmountPrecision),
		logger:       logger,
		workers:      workers,
	}
}

// mergeLine adds quantity heads of category to heirs, extending an existing line when present
func mergeLine(heirs []entities.HeirInput, category entities.HeirCategory, quantity int) []entities.HeirInput {
	out := make([]entities.HeirInput, len(heirs), len(heirs)+1)
	copy(out, heirs)
	for i := range out {
		if out[i].Category == category && !out[i].IsDisqualified() {
			out[i].Quantity += quantity
			return out
		}
	}
	return append(out, entities.HeirInput{Category: category, Quantity: quantity})
}

func describeHeirs(heirs []entities.HeirInput) string {
	s := ""
	for i, h := range heirs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%dx %s", h.Quantity, h.Category)
	}
	return s
}
