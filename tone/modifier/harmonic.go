package modifier

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/osc"
	"github.com/cwbudde/algo-tonegen/dsp/smooth"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Gain ramp times of the harmonic bank.
const (
	AttackSeconds  = 0.05
	ReleaseSeconds = 1.5
)

// Gains at or below this value are treated as silent and skipped.
const harmonicEpsilon = 0.0001

// Harmonic adds overtones 2..9 of the base frequency. Each overtone fades in
// quickly and out slowly when toggled; level changes apply at once.
type Harmonic struct {
	toggle

	sampleRate float64
	phaseScale float64
	slotOn     bool

	on    [params.NumHarmonics]bool
	level [params.NumHarmonics]float64
	phase [params.NumHarmonics]float64
	gain  [params.NumHarmonics]smooth.Smoother

	base []float64
	sum  []float64
}

// NewHarmonic returns a disabled harmonic bank with every overtone off.
func NewHarmonic() *Harmonic {
	h := &Harmonic{}
	for k := range h.level {
		h.level[k] = defaultOf(params.HarmonicLevelIDs[k])
	}
	return h
}

// Prepare sizes the scratch buffers, zeroes the phases and settles every
// gain at its current target.
func (h *Harmonic) Prepare(sampleRate float64, blockSize, channels int) error {
	if err := validatePrepare("harmonic", sampleRate, blockSize, channels); err != nil {
		return err
	}
	h.sampleRate = sampleRate
	h.phaseScale = core.TwoPi / sampleRate
	h.base = core.EnsureLen(h.base, blockSize)
	h.sum = core.EnsureLen(h.sum, blockSize)
	h.slotOn = h.Enabled()
	for k := range h.gain {
		if err := h.gain[k].SetSampleRate(sampleRate); err != nil {
			return err
		}
		h.gain[k].SetImmediate(h.target(k))
		h.phase[k] = 0
	}
	return nil
}

// Settle jumps every gain to its target without a ramp.
func (h *Harmonic) Settle() {
	h.slotOn = h.Enabled()
	for k := range h.gain {
		h.gain[k].SetImmediate(h.target(k))
	}
}

// SetBaseFrequencies copies the per-sample base frequency track used by the
// next Process call.
func (h *Harmonic) SetBaseFrequencies(baseHz []float64) {
	h.base = core.EnsureLen(h.base, len(baseHz))
	copy(h.base, baseHz)
}

// Process renders the overtones for the stored base track and adds them to
// every channel.
func (h *Harmonic) Process(buf *buffer.Buffer) {
	h.syncSlot()
	if !h.Active() {
		return
	}
	n := min(buf.NumFrames(), len(h.base))
	h.sum = core.EnsureLen(h.sum, n)
	h.Render(h.sum, h.base[:n])
	buf.AddMono(h.sum)
}

// Render writes the overtone sum for each sample of baseHz into dst,
// overwriting it. Samples whose base frequency is below 1 Hz get 0 while
// the gain ramps keep running.
func (h *Harmonic) Render(dst, baseHz []float64) {
	h.syncSlot()
	n := min(len(dst), len(baseHz))
	for i := 0; i < n; i++ {
		base := baseHz[i]
		silent := osc.IsSilent(base)
		sum := 0.0
		for k := range h.gain {
			g := h.gain[k].Next()
			if g <= harmonicEpsilon || silent {
				continue
			}
			h.phase[k] += base * float64(k+params.MinHarmonic) * h.phaseScale
			if h.phase[k] >= core.TwoPi {
				h.phase[k] = core.WrapPhase(h.phase[k])
			}
			sum += g * h.level[k] * math.Sin(h.phase[k])
		}
		dst[i] = sum
	}
}

// Active reports whether any overtone is audible or still ramping.
func (h *Harmonic) Active() bool {
	for k := range h.gain {
		if h.gain[k].IsSmoothing() || h.gain[k].Current() > harmonicEpsilon {
			return true
		}
	}
	return false
}

// ParameterChanged handles harmonic{2..9} and harmonic{2..9}Level.
func (h *Harmonic) ParameterChanged(id string, v float64) {
	order, isLevel, ok := params.ParseHarmonic(id)
	if !ok {
		return
	}
	k := order - params.MinHarmonic
	if isLevel {
		h.level[k] = clampTo(id, v)
		return
	}
	h.on[k] = params.Bool(v)
	h.retarget(k)
}

// Gain returns the current smoothed gain of a harmonic order in 2..9.
func (h *Harmonic) Gain(order int) float64 {
	k, ok := harmonicIndex(order)
	if !ok {
		return 0
	}
	return h.gain[k].Current()
}

// Level returns the mix level of a harmonic order in 2..9.
func (h *Harmonic) Level(order int) float64 {
	k, ok := harmonicIndex(order)
	if !ok {
		return 0
	}
	return h.level[k]
}

// HarmonicEnabled reports the toggle state of a harmonic order in 2..9.
func (h *Harmonic) HarmonicEnabled(order int) bool {
	k, ok := harmonicIndex(order)
	return ok && h.on[k]
}

// syncSlot retargets every overtone when the slot enable flag changed.
func (h *Harmonic) syncSlot() {
	if slot := h.Enabled(); slot != h.slotOn {
		h.slotOn = slot
		for k := range h.gain {
			h.retarget(k)
		}
	}
}

func (h *Harmonic) target(k int) float64 {
	if h.slotOn && h.on[k] {
		return 1
	}
	return 0
}

func (h *Harmonic) retarget(k int) {
	t := h.target(k)
	ramp := ReleaseSeconds
	if t > h.gain[k].Current() {
		ramp = AttackSeconds
	}
	h.gain[k].SetTarget(t, ramp)
}

func harmonicIndex(order int) (int, bool) {
	if order < params.MinHarmonic || order > params.MaxHarmonic {
		return 0, false
	}
	return order - params.MinHarmonic, true
}
