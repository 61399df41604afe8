// Package faraid is the library entry point of the inheritance engine. It
// wires the calculator, the standard heir directory and the succession
// drivers behind one Engine.
package faraid

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	calc "github.com/vsinha/faraid/pkg/application/services/faraid"
	"github.com/vsinha/faraid/pkg/application/services/orchestration"
	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/infrastructure/cache"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/memory"
)

type (
	Heir         = entities.HeirInput
	HeirCategory = entities.HeirCategory
	Result       = entities.CalculationResult
	HeirShare    = entities.HeirShare
	Status       = entities.Status

	ScenarioComparison = orchestration.ScenarioComparison
	ChainResult        = orchestration.ChainResult
	Problem            = orchestration.Problem
)

// Heir categories by their request id
const (
	Son                 = entities.Son
	Father              = entities.Father
	Husband             = entities.Husband
	Wife                = entities.Wife
	SonsSon             = entities.SonsSon
	Grandfather         = entities.Grandfather
	FullBrother         = entities.FullBrother
	PaternalBrother     = entities.PaternalBrother
	MaternalBrother     = entities.MaternalBrother
	FullBrothersSon     = entities.FullBrothersSon
	PaternalBrothersSon = entities.PaternalBrothersSon
	FullUncle           = entities.FullUncle
	PaternalUncle       = entities.PaternalUncle
	FullUnclesSon       = entities.FullUnclesSon
	PaternalUnclesSon   = entities.PaternalUnclesSon
	Daughter            = entities.Daughter
	SonsDaughter        = entities.SonsDaughter
	Mother              = entities.Mother
	MaternalGrandmother = entities.MaternalGrandmother
	PaternalGrandmother = entities.PaternalGrandmother
	FullSister          = entities.FullSister
	PaternalSister      = entities.PaternalSister
	MaternalSister      = entities.MaternalSister
	Emancipator         = entities.Emancipator
	Emancipatrix        = entities.Emancipatrix
)

// Uncertainty of a heir, resolved by CompareScenarios
const (
	Certain  = entities.Certain
	Missing  = entities.Missing
	Intersex = entities.Intersex
	Unborn   = entities.Unborn
)

var (
	ErrInvalidInput          = entities.ErrInvalidInput
	ErrInternalInconsistency = entities.ErrInternalInconsistency
)

// NewHeir returns quantity heirs of one category
func NewHeir(category HeirCategory, quantity int) Heir {
	return Heir{Category: category, Quantity: quantity}
}

// EngineConfig holds configuration for the engine
type EngineConfig struct {
	// AmountPrecision is the number of decimal places kept in amounts
	AmountPrecision int32
	// CacheTTL enables memoization of identical requests when positive
	CacheTTL time.Duration
	// Workers bounds concurrent scenario and batch calculations; zero means one per CPU
	Workers int
	Logger  *zap.Logger
}

// Engine divides estates between heirs
type Engine struct {
	calculator   *calc.CalculatorService
	orchestrator *orchestration.SuccessionOrchestrator
}

// NewEngine creates an engine with default configuration
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{AmountPrecision: calc.DefaultAmountPrecision})
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(config EngineConfig) *Engine {
	engine := calc.EngineConfig{
		AmountPrecision: config.AmountPrecision,
		Logger:          config.Logger,
	}
	if config.CacheTTL > 0 {
		engine.Cache = cache.NewResultCache(config.CacheTTL, 0)
	}

	calculator := calc.NewCalculatorServiceWithConfig(memory.NewStandardHeirDirectory(), engine)
	return &Engine{
		calculator: calculator,
		orchestrator: orchestration.NewSuccessionOrchestrator(calculator, orchestration.Config{
			Workers:         config.Workers,
			AmountPrecision: config.AmountPrecision,
			Logger:          config.Logger,
		}),
	}
}

// Calculate divides estate between heirs
func (e *Engine) Calculate(ctx context.Context, estate decimal.Decimal, heirs ...Heir) (*Result, error) {
	return e.calculator.Calculate(ctx, estate, heirs)
}

// CompareScenarios divides estate while one heir is mafqud, khuntsa or haml
func (e *Engine) CompareScenarios(ctx context.Context, estate decimal.Decimal, heirs ...Heir) (*ScenarioComparison, error) {
	return e.orchestrator.CompareScenarios(ctx, estate, heirs)
}

// RunChain divides estate where deceased, an heir in first, died before the division
func (e *Engine) RunChain(ctx context.Context, estate decimal.Decimal, first []Heir, deceased HeirCategory, second []Heir) (*ChainResult, error) {
	return e.orchestrator.RunChain(ctx, estate, first, deceased, second)
}

// RunBatch divides independent estates of people who died together
func (e *Engine) RunBatch(ctx context.Context, problems []Problem) ([]*Result, error) {
	return e.orchestrator.RunBatch(ctx, problems)
}
