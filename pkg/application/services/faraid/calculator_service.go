package faraid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/domain/repositories"
	"github.com/vsinha/faraid/pkg/domain/services"
)

// ResultCache memoizes finished calculations by request key
type ResultCache interface {
	Get(key string) (*entities.CalculationResult, bool)
	Set(key string, result *entities.CalculationResult)
}

// EngineConfig holds configuration for the calculation service
type EngineConfig struct {
	// AmountPrecision is the number of decimal places kept in amounts
	AmountPrecision int32
	// Logger receives stage and result logs; nil disables logging
	Logger *zap.Logger
	// Cache memoizes results of identical requests; nil disables caching
	Cache ResultCache
}

// CalculatorService runs the allocation pipeline for one estate
type CalculatorService struct {
	directory    repositories.HeirDirectory
	validator    *services.RequestValidator
	rules        *RuleEngine
	overrider    *SpecialCaseOverrider
	baseNumber   *BaseNumberCalculator
	residual     *ResidualDistributor
	finalizer    *Finalizer
	materializer *AmountMaterializer
	logger       *zap.Logger
	cache        ResultCache
}

// NewCalculatorService creates a calculation service with default configuration
func NewCalculatorService(directory repositories.HeirDirectory) *CalculatorService {
	return NewCalculatorServiceWithConfig(directory, EngineConfig{
		AmountPrecision: DefaultAmountPrecision,
	})
}

// NewCalculatorServiceWithConfig creates a calculation service with custom configuration
func NewCalculatorServiceWithConfig(directory repositories.HeirDirectory, config EngineConfig) *CalculatorService {
	classifier := services.NewRelationClassifier()
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{
		directory:    directory,
		validator:    services.NewRequestValidator(),
		rules:        NewRuleEngine(),
		overrider:    NewSpecialCaseOverrider(),
		baseNumber:   NewBaseNumberCalculator(classifier),
		residual:     NewResidualDistributor(),
		finalizer:    NewFinalizer(classifier),
		materializer: NewAmountMaterializer(config.AmountPrecision),
		logger:       logger,
		cache:        config.Cache,
	}
}

// Calculate distributes estate between the heirs. Input errors are returned
// before any computation; a broken pipeline invariant is reported as
// entities.ErrInternalInconsistency.
func (s *CalculatorService) Calculate(
	ctx context.Context,
	estate decimal.Decimal,
	heirs []entities.HeirInput,
) (*entities.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEstate(estate); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateHeirs(heirs); err != nil {
		return nil, err
	}
	for _, h := range heirs {
		if _, err := s.directory.GetCategory(h.Category); err != nil {
			return nil, entities.NewDomainError(entities.ErrorUnknownCategory, "category_id",
				fmt.Sprintf("heir directory lookup failed: %v", err))
		}
	}

	key := requestKey(estate, heirs)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug("calculation cache hit", zap.String("calculation_id", cached.ID))
			return cloneResult(cached), nil
		}
	}

	result, err := s.run(estate, heirs)
	if err != nil {
		s.logger.Error("calculation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("calculation completed",
		zap.String("calculation_id", result.ID),
		zap.String("status", result.Status.String()),
		zap.String("special_case", result.SpecialCase.String()),
		zap.Int64("base_initial", result.Base.Initial),
		zap.Int64("base_final", result.Base.Final),
		zap.Int("heirs", len(result.Heirs)),
	)

	if s.cache != nil {
		s.cache.Set(key, cloneResult(result))
	}
	return result, nil
}

func (s *CalculatorService) run(estate decimal.Decimal, heirs []entities.HeirInput) (*entities.CalculationResult, error) {
	// Stage 1: blocking and fraction assignment
	assigned := s.rules.Assign(heirs)

	// Stage 2: special patterns
	special := s.overrider.Detect(assigned)
	if special != entities.NoSpecialCase {
		assigned = s.overrider.Apply(special, assigned)
	}

	st := newAllocation(assigned)
	st.special = special
	for _, b := range st.blocked {
		st.notef("Hajb: %s %s", b.Category, b.Justification)
	}
	if special != entities.NoSpecialCase {
		st.notef("Special case: %s", special)
	}
	s.logStage("rules", st)

	if len(st.items) == 0 {
		st.base, st.initial = 1, 1
		st.status = entities.StatusEmpty
		st.notef("No eligible heir after blocking")
		return s.assemble(estate, assigned, st), nil
	}

	// Stage 3: base number and fixed shares
	s.baseNumber.apply(st)
	s.baseNumber.AssignFixedShares(st)
	s.logStage("base", st)

	// Stage 4: residue
	if special == entities.JaddWalIkhwah || special == entities.AlAdd {
		if err := s.overrider.ShareWithGrandfather(st); err != nil {
			return nil, err
		}
	}
	if err := s.residual.Distribute(st); err != nil {
		return nil, err
	}
	s.logStage("residue", st)

	// Stage 5: increase, shortfall, indivisibility
	if err := s.finalizer.Increase(st); err != nil {
		return nil, err
	}
	if special == entities.Akdariyyah {
		s.overrider.RecombineAkdariyyah(st)
	}
	if err := s.finalizer.Shortfall(st); err != nil {
		return nil, err
	}
	if err := s.finalizer.Indivisibility(st); err != nil {
		return nil, err
	}
	if err := s.finalizer.Verify(st); err != nil {
		return nil, err
	}
	s.logStage("finalize", st)

	return s.assemble(estate, assigned, st), nil
}

func (s *CalculatorService) logStage(stage string, st *allocation) {
	s.logger.Debug("pipeline stage",
		zap.String("stage", stage),
		zap.Int64("base", st.base),
		zap.String("status", st.status.String()),
	)
}

// assemble builds the result records in request order
func (s *CalculatorService) assemble(estate decimal.Decimal, assigned []entities.FurudhItem, st *allocation) *entities.CalculationResult {
	records := make([]entities.HeirShare, 0, len(assigned))
	for _, item := range assigned {
		record := entities.HeirShare{
			Category:      item.Category,
			Quantity:      item.Quantity,
			FractionLabel: item.Label,
			Justification: item.Justification,
			Blocked:       item.Kind == entities.Blocked,
		}
		if !record.Blocked {
			record.Share, _ = st.shares.Int(item.Category)
		}
		records = append(records, record)
	}

	s.materializer.Materialize(estate, st.base, records)

	return &entities.CalculationResult{
		ID:          uuid.NewString(),
		Estate:      estate,
		Base:        entities.BaseNumber{Initial: st.initial, Final: st.base},
		Status:      st.status,
		SpecialCase: st.special,
		Notes:       st.notes,
		Comparisons: st.comparisons,
		Heirs:       records,
	}
}

// requestKey hashes a request so identical requests share a cache entry
func requestKey(estate decimal.Decimal, heirs []entities.HeirInput) string {
	lines := make([]string, 0, len(heirs))
	for _, h := range heirs {
		lines = append(lines, fmt.Sprintf("%d:%d:%d:%s", h.Category, h.Quantity, h.Status, h.BlockingReason))
	}
	sum := sha256.Sum256([]byte(estate.String() + "|" + strings.Join(lines, ",")))
	return hex.EncodeToString(sum[:])
}

func cloneResult(r *entities.CalculationResult) *entities.CalculationResult {
	clone := *r
	clone.Notes = append([]string(nil), r.Notes...)
	clone.Comparisons = append([]entities.ComparisonItem(nil), r.Comparisons...)
	clone.Heirs = append([]entities.HeirShare(nil), r.Heirs...)
	return &clone
}
