package entities

import (
	"math/big"
)

// ShareMap holds the working share count of every inheriting category.
// Values are exact rationals so intermediate splits never lose precision;
// a finalized map only holds integers. A ShareMap belongs to one calculation.
type ShareMap struct {
	order  []HeirCategory
	shares map[HeirCategory]*big.Rat
}

// NewShareMap creates an empty share map
func NewShareMap() *ShareMap {
	return &ShareMap{
		order:  make([]HeirCategory, 0, 8),
		shares: make(map[HeirCategory]*big.Rat, 8),
	}
}

// Set replaces the share of a category
func (m *ShareMap) Set(category HeirCategory, value *big.Rat) {
	if _, exists := m.shares[category]; !exists {
		m.order = append(m.order, category)
	}
	m.shares[category] = new(big.Rat).Set(value)
}

// SetInt replaces the share of a category with an integer value
func (m *ShareMap) SetInt(category HeirCategory, value int64) {
	m.Set(category, new(big.Rat).SetInt64(value))
}

// Add increases the share of a category, creating it when absent
func (m *ShareMap) Add(category HeirCategory, value *big.Rat) {
	current, exists := m.shares[category]
	if !exists {
		m.Set(category, value)
		return
	}
	current.Add(current, value)
}

// Get returns a copy of the share of a category, zero when absent
func (m *ShareMap) Get(category HeirCategory) *big.Rat {
	if v, exists := m.shares[category]; exists {
		return new(big.Rat).Set(v)
	}
	return new(big.Rat)
}

// Int returns the share as an integer and whether it is one
func (m *ShareMap) Int(category HeirCategory) (int64, bool) {
	v, exists := m.shares[category]
	if !exists {
		return 0, true
	}
	if !v.IsInt() || !v.Num().IsInt64() {
		return 0, false
	}
	return v.Num().Int64(), true
}

// Has reports whether the category holds a share entry
func (m *ShareMap) Has(category HeirCategory) bool {
	_, exists := m.shares[category]
	return exists
}

// Delete removes a category from the map
func (m *ShareMap) Delete(category HeirCategory) {
	if _, exists := m.shares[category]; !exists {
		return
	}
	delete(m.shares, category)
	for i, c := range m.order {
		if c == category {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Categories returns the categories in insertion order
func (m *ShareMap) Categories() []HeirCategory {
	out := make([]HeirCategory, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries
func (m *ShareMap) Len() int {
	return len(m.order)
}

// Total returns the sum of all shares
func (m *ShareMap) Total() *big.Rat {
	total := new(big.Rat)
	for _, c := range m.order {
		total.Add(total, m.shares[c])
	}
	return total
}

// Scale multiplies every share by k
func (m *ShareMap) Scale(k int64) {
	if k == 1 {
		return
	}
	factor := new(big.Rat).SetInt64(k)
	for _, c := range m.order {
		m.shares[c].Mul(m.shares[c], factor)
	}
}

// Clone returns an independent copy
func (m *ShareMap) Clone() *ShareMap {
	clone := NewShareMap()
	for _, c := range m.order {
		clone.Set(c, m.shares[c])
	}
	return clone
}
