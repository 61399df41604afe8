package services

import (
	"github.com/vsinha/faraid/pkg/domain/entities"
)

// RelationClassifier classifies pairs of denominators and merges them into a common base
type RelationClassifier struct{}

// NewRelationClassifier creates a new relation classifier
func NewRelationClassifier() *RelationClassifier {
	return &RelationClassifier{}
}

// Classify returns the relation between two positive integers together with their lcm.
// The classification is symmetric in a and b.
func (rc *RelationClassifier) Classify(a, b int64) entities.ComparisonItem {
	g := GCD(a, b)
	item := entities.ComparisonItem{A: a, B: b, GCD: g, LCM: LCM(a, b)}

	switch {
	case a == b:
		item.Relation = entities.Equal
	case a%b == 0 || b%a == 0:
		item.Relation = entities.Subset
	case g > 1:
		item.Relation = entities.CommonFactor
	default:
		item.Relation = entities.Coprime
	}
	return item
}

// Combine folds the values into their lcm, returning every pairwise step taken
func (rc *RelationClassifier) Combine(values []int64) (int64, []entities.ComparisonItem) {
	if len(values) == 0 {
		return 1, nil
	}

	acc := values[0]
	steps := make([]entities.ComparisonItem, 0, len(values)-1)
	for _, v := range values[1:] {
		item := rc.Classify(acc, v)
		steps = append(steps, item)
		acc = item.LCM
	}
	return acc, steps
}

// Multipliers returns the complementary factors that bring a and b onto their lcm:
// a*ma == b*mb == lcm(a, b)
func (rc *RelationClassifier) Multipliers(a, b int64) (ma, mb int64, item entities.ComparisonItem) {
	item = rc.Classify(a, b)
	switch item.Relation {
	case entities.Equal:
		return 1, 1, item
	case entities.Coprime:
		return b, a, item
	default:
		return b / item.GCD, a / item.GCD, item
	}
}

// GCD returns the greatest common divisor of a and b
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b, or 0 if either is 0
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}
