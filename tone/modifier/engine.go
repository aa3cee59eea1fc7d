package modifier

import (
	"fmt"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
)

const defaultSeed = 1

// EngineOption mutates engine construction parameters.
type EngineOption func(*engineConfig) error

type engineConfig struct {
	seed int64
}

// WithSeed sets the seed of the atmosphere noise sequence.
func WithSeed(seed int64) EngineOption {
	return func(cfg *engineConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Engine owns the four modifiers and runs them in a fixed order: atmosphere,
// binaural, breath. The harmonic layer is rendered separately after the
// chain.
type Engine struct {
	binaural   *Binaural
	breath     *Breath
	harmonic   *Harmonic
	atmosphere *Atmosphere

	chain [3]Modifier
	slots [NumSlots]Modifier
}

// NewEngine creates an engine with every modifier disabled.
func NewEngine(sampleRate float64, opts ...EngineOption) (*Engine, error) {
	cfg := engineConfig{seed: defaultSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	atmo, err := NewAtmosphere(sampleRate, cfg.seed)
	if err != nil {
		return nil, fmt.Errorf("modifier engine: %w", err)
	}

	e := &Engine{
		binaural:   NewBinaural(),
		breath:     NewBreath(),
		harmonic:   NewHarmonic(),
		atmosphere: atmo,
	}
	e.chain = [3]Modifier{e.atmosphere, e.binaural, e.breath}
	e.slots = [NumSlots]Modifier{
		SlotBinaural:   e.binaural,
		SlotBreath:     e.breath,
		SlotHarmonic:   e.harmonic,
		SlotAtmosphere: e.atmosphere,
	}
	return e, nil
}

// Prepare prepares every modifier.
func (e *Engine) Prepare(sampleRate float64, blockSize, channels int) error {
	for slot, m := range e.slots {
		if err := m.Prepare(sampleRate, blockSize, channels); err != nil {
			return fmt.Errorf("modifier engine: prepare %s: %w", SlotName(slot), err)
		}
	}
	return nil
}

// Settle finishes all pending gain ramps at once. Hosts call it after
// restoring parameters during prepare.
func (e *Engine) Settle() {
	e.harmonic.Settle()
}

// Process runs the modifier chain over buf.
func (e *Engine) Process(buf *buffer.Buffer) {
	for _, m := range e.chain {
		m.Process(buf)
	}
}

// ProcessHarmonics adds the harmonic layer for the per-sample base frequency
// track baseHz to buf.
func (e *Engine) ProcessHarmonics(buf *buffer.Buffer, baseHz []float64) {
	e.harmonic.SetBaseFrequencies(baseHz)
	e.harmonic.Process(buf)
}

// ParameterChanged forwards a control update to every modifier.
func (e *Engine) ParameterChanged(id string, v float64) {
	for _, m := range e.slots {
		m.ParameterChanged(id, v)
	}
}

// SetModifierEnabled enables or disables a slot. Out-of-range slots are
// ignored.
func (e *Engine) SetModifierEnabled(slot int, enabled bool) {
	if slot < 0 || slot >= NumSlots {
		return
	}
	e.slots[slot].SetEnabled(enabled)
}

// IsModifierEnabled reports whether a slot is enabled. Out-of-range slots
// report false.
func (e *Engine) IsModifierEnabled(slot int) bool {
	if slot < 0 || slot >= NumSlots {
		return false
	}
	return e.slots[slot].Enabled()
}

// OffsetHz returns the binaural offset in Hz.
func (e *Engine) OffsetHz() float64 { return e.binaural.OffsetHz() }

// StereoWidth returns the binaural width in [0, 1].
func (e *Engine) StereoWidth() float64 { return e.binaural.Width() }

// Binaural returns the binaural modifier.
func (e *Engine) Binaural() *Binaural { return e.binaural }

// Breath returns the breath modifier.
func (e *Engine) Breath() *Breath { return e.breath }

// Harmonic returns the harmonic bank.
func (e *Engine) Harmonic() *Harmonic { return e.harmonic }

// Atmosphere returns the atmosphere layer.
func (e *Engine) Atmosphere() *Atmosphere { return e.atmosphere }
