package modifier

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Gain returns the breath envelope at phase for depth in [0, 1]. It is 1 at
// phase 0 and falls to depth at phase π.
func Gain(phase, depth float64) float64 {
	maxCut := 1 - depth
	return 1 - maxCut*0.5*(1-math.Cos(phase))
}

// Breath multiplies the whole mix by a slow raised-cosine envelope.
type Breath struct {
	toggle

	sampleRate float64
	rate       float64
	depth      float64
	phase      float64
	phaseInc   float64

	env []float64
}

// NewBreath returns a disabled breath modifier with default settings.
func NewBreath() *Breath {
	return &Breath{
		rate:  defaultOf(params.BreathRate),
		depth: defaultOf(params.BreathDepth),
	}
}

// Prepare sizes the envelope scratch and restarts the envelope at phase 0.
func (b *Breath) Prepare(sampleRate float64, blockSize, channels int) error {
	if err := validatePrepare("breath", sampleRate, blockSize, channels); err != nil {
		return err
	}
	b.sampleRate = sampleRate
	b.env = core.EnsureLen(b.env, blockSize)
	b.phase = 0
	b.updateInc()
	return nil
}

// Process applies the envelope to every channel.
func (b *Breath) Process(buf *buffer.Buffer) {
	if !b.Enabled() || b.sampleRate == 0 {
		return
	}
	n := buf.NumFrames()
	b.env = core.EnsureLen(b.env, n)
	env := b.env[:n]
	for i := range env {
		env[i] = Gain(b.phase, b.depth)
		b.phase += b.phaseInc
		if b.phase >= core.TwoPi {
			b.phase = core.WrapPhase(b.phase)
		}
	}
	buf.MulMono(env)
}

// ParameterChanged handles breathRate and breathDepth.
func (b *Breath) ParameterChanged(id string, v float64) {
	switch id {
	case params.BreathRate:
		b.rate = clampTo(id, v)
		b.updateInc()
	case params.BreathDepth:
		b.depth = clampTo(id, v)
	}
}

// Rate returns the envelope rate in Hz.
func (b *Breath) Rate() float64 { return b.rate }

// Depth returns the envelope floor in [0, 1].
func (b *Breath) Depth() float64 { return b.depth }

// Phase returns the envelope phase in radians.
func (b *Breath) Phase() float64 { return b.phase }

func (b *Breath) updateInc() {
	if b.sampleRate > 0 {
		b.phaseInc = core.TwoPi * b.rate / b.sampleRate
	}
}
