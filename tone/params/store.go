package params

import (
	"math"
	"math/bits"
	"sync/atomic"
)

// Store is a latest-value mailbox for every parameter. Set may be called
// from any goroutine; Drain is meant for the single audio goroutine. Neither
// locks nor allocates.
type Store struct {
	values []atomic.Uint64
	dirty  atomic.Uint64
}

// NewStore returns a store holding the default of every parameter. All
// parameters start out dirty so the first Drain delivers a full snapshot.
func NewStore() *Store {
	s := &Store{values: make([]atomic.Uint64, len(table))}
	for i, info := range table {
		s.values[i].Store(math.Float64bits(info.Default))
	}
	s.dirty.Store(allMask())
	return s
}

// Set clamps v to the range of id and publishes it. It returns false for an
// unknown id.
func (s *Store) Set(id string, v float64) bool {
	i, ok := index[id]
	if !ok {
		return false
	}
	s.values[i].Store(math.Float64bits(table[i].Clamp(v)))
	s.dirty.Or(1 << uint(i))
	return true
}

// Get returns the latest published value of id.
func (s *Store) Get(id string) (float64, bool) {
	i, ok := index[id]
	if !ok {
		return 0, false
	}
	return math.Float64frombits(s.values[i].Load()), true
}

// Drain delivers every parameter changed since the previous Drain, once
// each, in table order. Only the latest value of a parameter is delivered.
func (s *Store) Drain(fn func(id string, v float64)) {
	mask := s.dirty.Swap(0)
	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		mask &^= 1 << uint(i)
		fn(table[i].ID, math.Float64frombits(s.values[i].Load()))
	}
}

// MarkAllDirty schedules every parameter for the next Drain.
func (s *Store) MarkAllDirty() {
	s.dirty.Or(allMask())
}

// Pending reports whether any change awaits Drain.
func (s *Store) Pending() bool {
	return s.dirty.Load() != 0
}

func allMask() uint64 {
	return 1<<uint(len(table)) - 1
}
