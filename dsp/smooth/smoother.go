// Package smooth provides a linear-ramp value follower for control values
// that must not jump discontinuously into an audio path.
package smooth

import (
	"fmt"
	"math"
)

// Smoother ramps a current value linearly toward a target. Each call to Next
// advances the ramp by exactly one sample, so it must be called once per
// sample when used inline in a per-sample loop.
//
// The zero value is at rest on 0 and applies targets immediately until a
// sample rate is set.
//
// The ramp duration is given together with every target. This lets one
// smoother use different times depending on the direction of a change, such
// as a short attack and a long release.
type Smoother struct {
	sampleRate float64
	current    float64
	target     float64
	remaining  int
}

// New creates a smoother at rest on 0.
func New(sampleRate float64) (*Smoother, error) {
	s := &Smoother{}
	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSampleRate changes the rate used to convert ramp times to samples. A ramp
// in progress keeps its remaining sample count.
func (s *Smoother) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("smoother sample rate must be > 0 and finite: %f", sampleRate)
	}
	s.sampleRate = sampleRate
	return nil
}

// SetImmediate jumps to v with no ramp.
func (s *Smoother) SetImmediate(v float64) {
	s.current = v
	s.target = v
	s.remaining = 0
}

// SetTarget starts a ramp from the current value to v lasting rampSeconds.
// A non-positive ramp time, or one shorter than a sample, behaves like
// SetImmediate. Setting the value already targeted restarts nothing.
func (s *Smoother) SetTarget(v, rampSeconds float64) {
	if v == s.target && (s.remaining > 0 || s.current == v) {
		return
	}

	steps := 0
	if rampSeconds > 0 && s.sampleRate > 0 {
		steps = int(math.Round(rampSeconds * s.sampleRate))
	}
	if steps <= 0 {
		s.SetImmediate(v)
		return
	}

	s.target = v
	s.remaining = steps
}

// Next advances one sample and returns the new current value.
func (s *Smoother) Next() float64 {
	if s.remaining <= 0 {
		return s.current
	}

	s.current += (s.target - s.current) / float64(s.remaining)
	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
	}
	return s.current
}

// Skip advances n samples at once. The result equals calling Next n times up
// to floating-point rounding.
func (s *Smoother) Skip(n int) float64 {
	if n <= 0 || s.remaining <= 0 {
		return s.current
	}
	if n >= s.remaining {
		s.current = s.target
		s.remaining = 0
		return s.current
	}
	s.current += (s.target - s.current) * float64(n) / float64(s.remaining)
	s.remaining -= n
	return s.current
}

// Current returns the value without advancing.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being ramped toward.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is still in progress.
func (s *Smoother) IsSmoothing() bool { return s.remaining > 0 }

// RemainingSamples returns the number of Next calls until the target is reached.
func (s *Smoother) RemainingSamples() int { return s.remaining }

// SampleRate returns the sample rate in Hz.
func (s *Smoother) SampleRate() float64 { return s.sampleRate }
