package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/application/services/faraid"
	"github.com/vsinha/faraid/pkg/domain/entities"
	testdata "github.com/vsinha/faraid/pkg/infrastructure/testing"
)

func TestResultCache_GetSet(t *testing.T) {
	c := NewResultCache(time.Minute, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	want := &entities.CalculationResult{ID: "calc-1", Base: entities.BaseNumber{Initial: 6, Final: 6}}
	c.Set("k", want)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, want, got)
	assert.Equal(t, 1, c.Len())

	c.Flush()
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestResultCache_Expiry(t *testing.T) {
	c := NewResultCache(10*time.Millisecond, 0)
	c.Set("k", &entities.CalculationResult{ID: "calc-1"})

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestResultCache_WithCalculator(t *testing.T) {
	c := NewResultCache(time.Minute, 0)
	service := faraid.NewCalculatorServiceWithConfig(testdata.BuildStandardDirectory(), faraid.EngineConfig{Cache: c})
	heirs := testdata.Heirs(entities.Mother, entities.Daughter)

	first, err := service.Calculate(context.Background(), decimal.NewFromInt(400), heirs)
	require.NoError(t, err)
	second, err := service.Calculate(context.Background(), decimal.NewFromInt(400), heirs)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, first.ID, second.ID)
	assert.NotSame(t, first, second)
}
