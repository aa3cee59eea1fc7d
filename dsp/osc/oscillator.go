// Package osc provides a phase-accumulating tone oscillator.
package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// SilenceThresholdHz is the frequency below which a tone is treated as off.
// Drivers output exact zeros for such samples instead of a near-DC tone.
const SilenceThresholdHz = 1.0

// IsSilent reports whether hz is below SilenceThresholdHz.
func IsSilent(hz float64) bool {
	return hz < SilenceThresholdHz
}

// Waveform selects the function evaluated at the oscillator phase.
type Waveform int

const (
	// Sine evaluates sin(phase).
	Sine Waveform = iota
	// Quadrature evaluates sin(phase + π/2), a cosine offset by a quarter cycle.
	Quadrature
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Quadrature:
		return "quadrature"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Option mutates oscillator construction parameters.
type Option func(*config) error

type config struct {
	waveform  Waveform
	frequency float64
	phase     float64
}

// WithWaveform selects the waveform.
func WithWaveform(w Waveform) Option {
	return func(cfg *config) error {
		if w != Sine && w != Quadrature {
			return fmt.Errorf("oscillator waveform is unknown: %d", int(w))
		}
		cfg.waveform = w
		return nil
	}
}

// WithFrequency sets the initial frequency in Hz.
func WithFrequency(hz float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("oscillator frequency must be finite: %f", hz)
		}
		cfg.frequency = hz
		return nil
	}
}

// WithPhase sets the initial phase in radians. It is wrapped to [0, 2π).
func WithPhase(phase float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(phase) || math.IsInf(phase, 0) {
			return fmt.Errorf("oscillator phase must be finite: %f", phase)
		}
		cfg.phase = core.WrapPhase(phase)
		return nil
	}
}

// Oscillator generates one sinusoid at a controllable instantaneous frequency.
// It does not smooth frequency changes; callers that need glides drive
// SetFrequency from a smoother.
type Oscillator struct {
	sampleRate float64
	waveform   Waveform
	frequency  float64
	phase      float64
	phaseInc   float64
	startPhase float64
}

// New creates an oscillator for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{waveform: Sine}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{
		sampleRate: sampleRate,
		waveform:   cfg.waveform,
		phase:      cfg.phase,
		startPhase: cfg.phase,
	}
	o.SetFrequency(cfg.frequency)
	return o, nil
}

// SetSampleRate updates the sample rate and keeps the current frequency.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}
	o.sampleRate = sampleRate
	o.SetFrequency(o.frequency)
	return nil
}

// SetFrequency sets the frequency used from the next sample on.
func (o *Oscillator) SetFrequency(hz float64) {
	o.frequency = hz
	o.phaseInc = core.TwoPi * hz / o.sampleRate
}

// Frequency returns the frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// Phase returns the phase in radians, in [0, 2π).
func (o *Oscillator) Phase() float64 { return o.phase }

// Waveform returns the selected waveform.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Reset restores the initial phase.
func (o *Oscillator) Reset() {
	o.phase = o.startPhase
}

// NextSample evaluates the waveform at the current phase, then advances the
// phase by one sample.
func (o *Oscillator) NextSample() float64 {
	var out float64
	if o.waveform == Quadrature {
		out = math.Sin(o.phase + math.Pi/2)
	} else {
		out = math.Sin(o.phase)
	}

	o.phase += o.phaseInc
	if o.phase >= core.TwoPi || o.phase < 0 {
		o.phase = core.WrapPhase(o.phase)
	}
	return out
}

// Process fills dst with consecutive samples at the current frequency.
func (o *Oscillator) Process(dst []float64) {
	for i := range dst {
		dst[i] = o.NextSample()
	}
}
