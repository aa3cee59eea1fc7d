package modifier

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Modifier is one stage of the modifier chain.
type Modifier interface {
	// Prepare resets state for a new stream configuration.
	Prepare(sampleRate float64, blockSize, channels int) error
	// Process modifies buf in place. It is a no-op while disabled.
	Process(buf *buffer.Buffer)
	// ParameterChanged applies a control update. Unknown ids are ignored.
	ParameterChanged(id string, v float64)
	SetEnabled(enabled bool)
	Enabled() bool
}

// Modifier slots addressed by the control surface.
const (
	SlotBinaural = iota
	SlotBreath
	SlotHarmonic
	SlotAtmosphere

	NumSlots
)

// SlotName returns a short lowercase name for slot.
func SlotName(slot int) string {
	switch slot {
	case SlotBinaural:
		return "binaural"
	case SlotBreath:
		return "breath"
	case SlotHarmonic:
		return "harmonic"
	case SlotAtmosphere:
		return "atmosphere"
	default:
		return fmt.Sprintf("slot%d", slot)
	}
}

// ParseSlot maps a slot name back to its index.
func ParseSlot(name string) (int, error) {
	for slot := 0; slot < NumSlots; slot++ {
		if SlotName(slot) == name {
			return slot, nil
		}
	}
	return -1, fmt.Errorf("modifier: unknown slot %q", name)
}

// toggle carries the enable flag shared by all modifiers. It is the only
// modifier state written from outside the audio goroutine.
type toggle struct {
	enabled atomic.Bool
}

// SetEnabled turns the modifier on or off from the next processed block.
func (t *toggle) SetEnabled(enabled bool) { t.enabled.Store(enabled) }

// Enabled reports whether the modifier runs.
func (t *toggle) Enabled() bool { return t.enabled.Load() }

func validatePrepare(name string, sampleRate float64, blockSize, channels int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize, Channels: channels}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func defaultOf(id string) float64 {
	info, _ := params.Lookup(id)
	return info.Default
}

func clampTo(id string, v float64) float64 {
	info, ok := params.Lookup(id)
	if !ok {
		return v
	}
	return info.Clamp(v)
}
