package snap

import (
	"math"
	"slices"
)

// Nearest returns the candidate closest to value by absolute difference. Ties
// resolve to the first candidate in slice order. An empty candidate list
// returns value unchanged.
func Nearest(value float64, candidates []float64) float64 {
	if len(candidates) == 0 {
		return value
	}
	best := candidates[0]
	bestDist := math.Abs(best - value)
	for _, c := range candidates[1:] {
		if d := math.Abs(c - value); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Set is an immutable, owned collection of snap frequencies. Its zero value
// is an empty set that passes every value through.
type Set struct {
	freqs    []float64
	min, max float64
}

// NewSet copies freqs into a new Set. Negative and non-finite entries are
// dropped and 0 is inserted first when missing. The remaining order is kept,
// since it decides ties. When no valid entry remains the set is empty and
// passes every value through.
func NewSet(freqs []float64) *Set {
	valid := make([]float64, 0, len(freqs)+1)
	for _, f := range freqs {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return &Set{}
	}
	if !slices.Contains(valid, 0) {
		valid = slices.Insert(valid, 0, 0)
	}

	s := &Set{freqs: valid, min: valid[0], max: valid[0]}
	for _, f := range valid[1:] {
		s.min = math.Min(s.min, f)
		s.max = math.Max(s.max, f)
	}
	return s
}

// Nearest returns the member closest to value, or value when s is nil or empty.
func (s *Set) Nearest(value float64) float64 {
	if s == nil {
		return value
	}
	return Nearest(value, s.freqs)
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.freqs)
}

// Frequencies returns a copy of the members in set order.
func (s *Set) Frequencies() []float64 {
	if s == nil {
		return nil
	}
	return slices.Clone(s.freqs)
}

// Contains reports whether hz is a member.
func (s *Set) Contains(hz float64) bool {
	return s != nil && slices.Contains(s.freqs, hz)
}

// Range returns the smallest and largest member. A frequency control in snap
// mode substitutes this range for its normal one.
func (s *Set) Range() (lo, hi float64) {
	if s.Len() == 0 {
		return 0, 0
	}
	return s.min, s.max
}
