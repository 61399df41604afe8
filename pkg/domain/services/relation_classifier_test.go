package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/faraid/pkg/domain/entities"
)

func TestRelationClassifier_Classify(t *testing.T) {
	rc := NewRelationClassifier()

	tests := []struct {
		a, b     int64
		relation entities.Relation
		lcm      int64
	}{
		{6, 6, entities.Equal, 6},
		{3, 6, entities.Subset, 6},
		{12, 4, entities.Subset, 12},
		{4, 6, entities.CommonFactor, 12},
		{8, 6, entities.CommonFactor, 24},
		{3, 4, entities.Coprime, 12},
		{5, 7, entities.Coprime, 35},
	}

	for _, tt := range tests {
		item := rc.Classify(tt.a, tt.b)
		assert.Equal(t, tt.relation, item.Relation, "%d vs %d", tt.a, tt.b)
		assert.Equal(t, tt.lcm, item.LCM, "%d vs %d", tt.a, tt.b)
	}
}

func TestRelationClassifier_TotalAndSymmetric(t *testing.T) {
	rc := NewRelationClassifier()

	for a := int64(1); a <= 30; a++ {
		for b := int64(1); b <= 30; b++ {
			ab := rc.Classify(a, b)
			ba := rc.Classify(b, a)
			require.Equal(t, ab.Relation, ba.Relation, "classification of %d,%d is not symmetric", a, b)
			require.Equal(t, ab.LCM, ba.LCM)
			require.Zero(t, ab.LCM%a)
			require.Zero(t, ab.LCM%b)

			ma, mb, _ := rc.Multipliers(a, b)
			require.Equal(t, a*ma, b*mb, "multipliers %d,%d do not meet for %d,%d", ma, mb, a, b)
		}
	}
}

func TestRelationClassifier_Combine(t *testing.T) {
	rc := NewRelationClassifier()

	lcm, steps := rc.Combine([]int64{2, 6, 4})
	assert.Equal(t, int64(12), lcm)
	require.Len(t, steps, 2)
	assert.Equal(t, entities.Subset, steps[0].Relation)
	assert.Equal(t, entities.CommonFactor, steps[1].Relation)

	lcm, steps = rc.Combine(nil)
	assert.Equal(t, int64(1), lcm)
	assert.Empty(t, steps)
}

func TestRelationClassifier_Multipliers(t *testing.T) {
	rc := NewRelationClassifier()

	tests := []struct {
		name   string
		a, b   int64
		ma, mb int64
	}{
		{"equal", 3, 3, 1, 1},
		{"subset", 3, 6, 2, 1},
		{"common_factor", 4, 6, 3, 2},
		{"coprime", 3, 4, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, mb, _ := rc.Multipliers(tt.a, tt.b)
			assert.Equal(t, tt.ma, ma)
			assert.Equal(t, tt.mb, mb)
		})
	}
}

func TestGCDAndLCM(t *testing.T) {
	assert.Equal(t, int64(6), GCD(12, 18))
	assert.Equal(t, int64(6), GCD(-12, 18))
	assert.Equal(t, int64(5), GCD(5, 0))
	assert.Equal(t, int64(36), LCM(12, 18))
	assert.Equal(t, int64(0), LCM(0, 7))
}
