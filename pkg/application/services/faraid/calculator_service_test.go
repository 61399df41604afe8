package faraid

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/domain/entities"
	testdata "github.com/vsinha/faraid/pkg/infrastructure/testing"
)

func newTestCalculatorService() *CalculatorService {
	return NewCalculatorService(testdata.BuildStandardDirectory())
}

func sharesOf(result *entities.CalculationResult) map[entities.HeirCategory]int64 {
	out := make(map[entities.HeirCategory]int64, len(result.Heirs))
	for _, h := range result.Heirs {
		out[h.Category] = h.Share
	}
	return out
}

func TestCalculatorService_Calculate(t *testing.T) {
	h := testdata.Heir

	tests := []struct {
		name    string
		heirs   []entities.HeirInput
		initial int64
		final   int64
		shares  map[entities.HeirCategory]int64
		status  entities.Status
		special entities.SpecialCase
	}{
		{
			name:    "gharrawain_husband",
			heirs:   testdata.Heirs(entities.Husband, entities.Mother, entities.Father),
			initial: 6, final: 6,
			shares:  map[entities.HeirCategory]int64{entities.Husband: 3, entities.Mother: 1, entities.Father: 2},
			status:  entities.Balanced,
			special: entities.Gharrawain,
		},
		{
			name:    "gharrawain_wife",
			heirs:   testdata.Heirs(entities.Wife, entities.Mother, entities.Father),
			initial: 4, final: 4,
			shares:  map[entities.HeirCategory]int64{entities.Wife: 1, entities.Mother: 1, entities.Father: 2},
			status:  entities.Balanced,
			special: entities.Gharrawain,
		},
		{
			name:    "musytarakah",
			heirs:   []entities.HeirInput{h(entities.Husband, 1), h(entities.Mother, 1), h(entities.MaternalBrother, 2), h(entities.FullBrother, 1)},
			initial: 6, final: 18,
			shares: map[entities.HeirCategory]int64{
				entities.Husband: 9, entities.Mother: 3, entities.MaternalBrother: 4, entities.FullBrother: 2,
			},
			status:  entities.StatusIndivisibilityCorrected,
			special: entities.Musytarakah,
		},
		{
			name:    "akdariyyah",
			heirs:   testdata.Heirs(entities.Husband, entities.Mother, entities.Grandfather, entities.FullSister),
			initial: 6, final: 27,
			shares: map[entities.HeirCategory]int64{
				entities.Husband: 9, entities.Mother: 6, entities.Grandfather: 8, entities.FullSister: 4,
			},
			status:  entities.StatusIncrease | entities.StatusIndivisibilityCorrected,
			special: entities.Akdariyyah,
		},
		{
			name:    "jadd_wal_ikhwah_with_fixed_heirs",
			heirs:   []entities.HeirInput{h(entities.Husband, 1), h(entities.Mother, 1), h(entities.Grandfather, 1), h(entities.FullSister, 2)},
			initial: 6, final: 12,
			shares: map[entities.HeirCategory]int64{
				entities.Husband: 6, entities.Mother: 2, entities.Grandfather: 2, entities.FullSister: 2,
			},
			status:  entities.StatusIndivisibilityCorrected,
			special: entities.JaddWalIkhwah,
		},
		{
			name:    "jadd_wal_ikhwah_alone",
			heirs:   testdata.Heirs(entities.Grandfather, entities.FullBrother, entities.FullSister),
			initial: 5, final: 5,
			shares: map[entities.HeirCategory]int64{
				entities.Grandfather: 2, entities.FullBrother: 2, entities.FullSister: 1,
			},
			status:  entities.Balanced,
			special: entities.JaddWalIkhwah,
		},
		{
			name:    "jadd_third_of_estate_with_three_brothers",
			heirs:   []entities.HeirInput{h(entities.Grandfather, 1), h(entities.FullBrother, 3)},
			initial: 4, final: 9,
			shares:  map[entities.HeirCategory]int64{entities.Grandfather: 3, entities.FullBrother: 6},
			status:  entities.StatusIndivisibilityCorrected,
			special: entities.JaddWalIkhwah,
		},
		{
			name:    "jadd_third_of_estate_with_four_brothers",
			heirs:   []entities.HeirInput{h(entities.Grandfather, 1), h(entities.FullBrother, 4)},
			initial: 5, final: 6,
			shares:  map[entities.HeirCategory]int64{entities.Grandfather: 2, entities.FullBrother: 4},
			status:  entities.StatusIndivisibilityCorrected,
			special: entities.JaddWalIkhwah,
		},
		{
			name: "al_add",
			heirs: testdata.Heirs(entities.PaternalGrandmother, entities.Grandfather, entities.FullSister,
				entities.PaternalBrother, entities.PaternalSister),
			initial: 6, final: 54,
			shares: map[entities.HeirCategory]int64{
				entities.PaternalGrandmother: 9, entities.Grandfather: 15, entities.FullSister: 27,
				entities.PaternalBrother: 2, entities.PaternalSister: 1,
			},
			status:  entities.StatusIndivisibilityCorrected,
			special: entities.AlAdd,
		},
		{
			name:    "aul_husband_two_full_sisters",
			heirs:   []entities.HeirInput{h(entities.Husband, 1), h(entities.FullSister, 2)},
			initial: 6, final: 7,
			shares: map[entities.HeirCategory]int64{entities.Husband: 3, entities.FullSister: 4},
			status: entities.StatusIncrease,
		},
		{
			name:    "aul_husband_mother_two_full_sisters",
			heirs:   []entities.HeirInput{h(entities.Husband, 1), h(entities.Mother, 1), h(entities.FullSister, 2)},
			initial: 6, final: 8,
			shares: map[entities.HeirCategory]int64{entities.Husband: 3, entities.Mother: 1, entities.FullSister: 4},
			status: entities.StatusIncrease,
		},
		{
			name:    "aul_with_blocked_sisters",
			heirs:   []entities.HeirInput{h(entities.Husband, 1), h(entities.Mother, 1), h(entities.Father, 1), h(entities.Daughter, 2), h(entities.FullSister, 2)},
			initial: 12, final: 15,
			shares: map[entities.HeirCategory]int64{
				entities.Husband: 3, entities.Mother: 2, entities.Father: 2, entities.Daughter: 8, entities.FullSister: 0,
			},
			status: entities.StatusIncrease,
		},
		{
			name:    "radd_mother_daughter",
			heirs:   testdata.Heirs(entities.Mother, entities.Daughter),
			initial: 6, final: 4,
			shares: map[entities.HeirCategory]int64{entities.Mother: 1, entities.Daughter: 3},
			status: entities.StatusShortfall,
		},
		{
			name:    "radd_mother_two_full_sisters",
			heirs:   []entities.HeirInput{h(entities.Mother, 1), h(entities.FullSister, 2)},
			initial: 6, final: 5,
			shares: map[entities.HeirCategory]int64{entities.Mother: 1, entities.FullSister: 4},
			status: entities.StatusShortfall,
		},
		{
			name:    "radd_spouse_and_one_other",
			heirs:   testdata.Heirs(entities.Husband, entities.Mother),
			initial: 6, final: 2,
			shares: map[entities.HeirCategory]int64{entities.Husband: 1, entities.Mother: 1},
			status: entities.StatusShortfallWithSpouse,
		},
		{
			name:    "radd_spouse_joint_equal",
			heirs:   []entities.HeirInput{h(entities.Wife, 1), h(entities.Mother, 1), h(entities.MaternalBrother, 2)},
			initial: 12, final: 4,
			shares: map[entities.HeirCategory]int64{entities.Wife: 1, entities.Mother: 1, entities.MaternalBrother: 2},
			status: entities.StatusShortfallWithSpouse,
		},
		{
			name:    "radd_spouse_joint_coprime",
			heirs:   testdata.Heirs(entities.Husband, entities.Daughter, entities.SonsDaughter),
			initial: 12, final: 16,
			shares: map[entities.HeirCategory]int64{entities.Husband: 4, entities.Daughter: 9, entities.SonsDaughter: 3},
			status: entities.StatusShortfallWithSpouse,
		},
		{
			name:    "inkisar_mother_six_uncles",
			heirs:   []entities.HeirInput{h(entities.Mother, 1), h(entities.FullUncle, 6)},
			initial: 3, final: 9,
			shares: map[entities.HeirCategory]int64{entities.Mother: 3, entities.FullUncle: 6},
			status: entities.StatusIndivisibilityCorrected,
		},
		{
			name:    "inkisar_mother_five_uncles",
			heirs:   []entities.HeirInput{h(entities.Mother, 1), h(entities.FullUncle, 5)},
			initial: 3, final: 15,
			shares: map[entities.HeirCategory]int64{entities.Mother: 5, entities.FullUncle: 10},
			status: entities.StatusIndivisibilityCorrected,
		},
		{
			name:    "inkisar_mother_four_uncles",
			heirs:   []entities.HeirInput{h(entities.Mother, 1), h(entities.FullUncle, 4)},
			initial: 3, final: 6,
			shares: map[entities.HeirCategory]int64{entities.Mother: 2, entities.FullUncle: 4},
			status: entities.StatusIndivisibilityCorrected,
		},
		{
			name:    "inkisar_three_groups",
			heirs:   []entities.HeirInput{h(entities.Wife, 4), h(entities.Daughter, 5), h(entities.FullUncle, 3)},
			initial: 24, final: 1440,
			shares: map[entities.HeirCategory]int64{entities.Wife: 180, entities.Daughter: 960, entities.FullUncle: 300},
			status: entities.StatusIndivisibilityCorrected,
		},
		{
			name:    "residue_son_twice_daughter",
			heirs:   testdata.Heirs(entities.Husband, entities.Mother, entities.Son, entities.Daughter),
			initial: 12, final: 36,
			shares: map[entities.HeirCategory]int64{
				entities.Husband: 9, entities.Mother: 6, entities.Son: 14, entities.Daughter: 7,
			},
			status: entities.StatusIndivisibilityCorrected,
		},
		{
			name:    "all_residuary_single_sex",
			heirs:   []entities.HeirInput{h(entities.Son, 3)},
			initial: 3, final: 3,
			shares: map[entities.HeirCategory]int64{entities.Son: 3},
			status: entities.Balanced,
		},
		{
			name:    "all_residuary_mixed",
			heirs:   testdata.Heirs(entities.Son, entities.Daughter),
			initial: 3, final: 3,
			shares: map[entities.HeirCategory]int64{entities.Son: 2, entities.Daughter: 1},
			status: entities.Balanced,
		},
		{
			name:    "disqualified_son",
			heirs:   []entities.HeirInput{testdata.DisqualifiedHeir(entities.Son, 1, "murder"), h(entities.Daughter, 1)},
			initial: 2, final: 1,
			shares: map[entities.HeirCategory]int64{entities.Son: 0, entities.Daughter: 1},
			status: entities.StatusShortfall,
		},
		{
			name:    "no_eligible_heir",
			heirs:   []entities.HeirInput{testdata.DisqualifiedHeir(entities.Son, 2, "apostasy")},
			initial: 1, final: 1,
			shares: map[entities.HeirCategory]int64{entities.Son: 0},
			status: entities.StatusEmpty,
		},
	}

	service := newTestCalculatorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Calculate(context.Background(), decimal.NewFromInt(1_000_000), tt.heirs)
			require.NoError(t, err)

			assert.Equal(t, tt.initial, result.Base.Initial, "initial base")
			assert.Equal(t, tt.final, result.Base.Final, "final base")
			assert.Equal(t, tt.status, result.Status, "status %s", result.Status)
			assert.Equal(t, tt.special, result.SpecialCase)
			if diff := cmp.Diff(tt.shares, sharesOf(result)); diff != "" {
				t.Errorf("shares mismatch (-want +got):\n%s", diff)
			}
			assert.NotEmpty(t, result.Notes)
		})
	}
}

func TestCalculatorService_Invariants(t *testing.T) {
	service := newTestCalculatorService()

	for _, sc := range testdata.BuildClassicalScenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			result, err := service.Calculate(context.Background(), sc.Estate, sc.Heirs)
			require.NoError(t, err)

			assert.Equal(t, result.Base.Final, result.TotalShares())

			total := decimal.Zero
			for _, heir := range result.Heirs {
				if heir.Quantity > 1 {
					assert.Zero(t, heir.Share%int64(heir.Quantity), "%s share %d over %d heads", heir.Category, heir.Share, heir.Quantity)
				}
				if heir.Blocked {
					assert.Zero(t, heir.Share)
					assert.NotEmpty(t, heir.Justification)
				}
				total = total.Add(heir.Amount)
			}
			assert.True(t, total.Sub(sc.Estate).Abs().LessThan(decimal.New(1, -4)),
				"amounts add up to %s, estate %s", total, sc.Estate)
		})
	}
}

func TestCalculatorService_BlockedHeirs(t *testing.T) {
	service := newTestCalculatorService()
	heirs := testdata.Heirs(entities.Father, entities.Grandfather, entities.PaternalGrandmother, entities.FullBrother, entities.Son)

	result, err := service.Calculate(context.Background(), decimal.NewFromInt(600), heirs)
	require.NoError(t, err)

	for _, c := range []entities.HeirCategory{entities.Grandfather, entities.PaternalGrandmother, entities.FullBrother} {
		heir, ok := result.Heir(c)
		require.True(t, ok)
		assert.True(t, heir.Blocked, "%s should be blocked", c)
		assert.Equal(t, "Mahjub", heir.FractionLabel)
		assert.Equal(t, "blocked by Father", heir.Justification)
		assert.True(t, heir.Amount.IsZero())
	}

	father, _ := result.Heir(entities.Father)
	son, _ := result.Heir(entities.Son)
	assert.Equal(t, int64(1), father.Share)
	assert.Equal(t, int64(5), son.Share)
	assert.True(t, decimal.NewFromInt(100).Equal(father.Amount))
	assert.True(t, decimal.NewFromInt(500).Equal(son.Amount))
}

func TestCalculatorService_Amounts(t *testing.T) {
	service := newTestCalculatorService()
	heirs := []entities.HeirInput{testdata.Heir(entities.Mother, 1), testdata.Heir(entities.FullUncle, 6)}

	result, err := service.Calculate(context.Background(), decimal.NewFromInt(90_000), heirs)
	require.NoError(t, err)

	mother, _ := result.Heir(entities.Mother)
	uncles, _ := result.Heir(entities.FullUncle)
	assert.True(t, decimal.NewFromInt(30_000).Equal(mother.Amount), "mother got %s", mother.Amount)
	assert.True(t, decimal.NewFromInt(60_000).Equal(uncles.Amount), "uncles got %s", uncles.Amount)
	assert.True(t, decimal.NewFromInt(10_000).Equal(uncles.AmountEach), "each uncle got %s", uncles.AmountEach)
}

func TestCalculatorService_InputErrors(t *testing.T) {
	service := newTestCalculatorService()

	tests := []struct {
		name   string
		estate decimal.Decimal
		heirs  []entities.HeirInput
		code   entities.ErrorCode
	}{
		{"zero_estate", decimal.Zero, testdata.Heirs(entities.Son), entities.ErrorInvalidEstate},
		{"negative_estate", decimal.NewFromInt(-5), testdata.Heirs(entities.Son), entities.ErrorInvalidEstate},
		{"no_heirs", decimal.NewFromInt(100), nil, entities.ErrorEmptyRequest},
		{"unknown_category", decimal.NewFromInt(100), testdata.Heirs(entities.HeirCategory(99)), entities.ErrorUnknownCategory},
		{"zero_quantity", decimal.NewFromInt(100), []entities.HeirInput{testdata.Heir(entities.Son, 0)}, entities.ErrorInvalidQuantity},
		{"two_husbands", decimal.NewFromInt(100), []entities.HeirInput{testdata.Heir(entities.Husband, 2)}, entities.ErrorInvalidQuantity},
		{"duplicate_line", decimal.NewFromInt(100), testdata.Heirs(entities.Son, entities.Son), entities.ErrorDuplicateCategory},
		{"husband_and_wife", decimal.NewFromInt(100), testdata.Heirs(entities.Husband, entities.Wife), entities.ErrorConflictingSpouse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Calculate(context.Background(), tt.estate, tt.heirs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrInvalidInput))
			assert.False(t, errors.Is(err, entities.ErrInternalInconsistency))

			var domainErr entities.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

type mapCache struct {
	entries map[string]*entities.CalculationResult
	hits    int
}

func (c *mapCache) Get(key string) (*entities.CalculationResult, bool) {
	r, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return r, ok
}

func (c *mapCache) Set(key string, result *entities.CalculationResult) {
	c.entries[key] = result
}

func TestCalculatorService_Cache(t *testing.T) {
	cache := &mapCache{entries: make(map[string]*entities.CalculationResult)}
	service := NewCalculatorServiceWithConfig(testdata.BuildStandardDirectory(), EngineConfig{Cache: cache})
	heirs := testdata.Heirs(entities.Husband, entities.Mother, entities.Father)

	first, err := service.Calculate(context.Background(), decimal.NewFromInt(600), heirs)
	require.NoError(t, err)
	second, err := service.Calculate(context.Background(), decimal.NewFromInt(600), heirs)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Heirs, second.Heirs)

	_, err = service.Calculate(context.Background(), decimal.NewFromInt(700), heirs)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

func TestCalculatorService_CacheKeyIncludesStatus(t *testing.T) {
	cache := &mapCache{entries: make(map[string]*entities.CalculationResult)}
	service := NewCalculatorServiceWithConfig(testdata.BuildStandardDirectory(), EngineConfig{Cache: cache})
	certain := testdata.Heirs(entities.Wife, entities.Son)
	unborn := testdata.Heirs(entities.Wife, entities.Son)
	unborn[1].Status = entities.Unborn

	first, err := service.Calculate(context.Background(), decimal.NewFromInt(800), certain)
	require.NoError(t, err)
	second, err := service.Calculate(context.Background(), decimal.NewFromInt(800), unborn)
	require.NoError(t, err)

	assert.Equal(t, 0, cache.hits)
	assert.Len(t, cache.entries, 2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCalculatorService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCalculatorService().Calculate(ctx, decimal.NewFromInt(100), testdata.Heirs(entities.Son))
	require.ErrorIs(t, err, context.Canceled)
}
