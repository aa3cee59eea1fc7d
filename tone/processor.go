package tone

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/smooth"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

const (
	defaultFrequencyGlide = 0.02
	defaultVolumeRamp     = 0.02
	defaultSeed           = 1
)

// Option mutates processor construction parameters.
type Option func(*config) error

type config struct {
	glide      float64
	volumeRamp float64
	seed       int64
	snapFreqs  []float64
}

func defaultConfig() config {
	return config{
		glide:      defaultFrequencyGlide,
		volumeRamp: defaultVolumeRamp,
		seed:       defaultSeed,
		snapFreqs:  snap.DefaultFrequencies(),
	}
}

// WithFrequencyGlide sets the ramp time of frequency changes in seconds.
// Zero makes frequency changes immediate.
func WithFrequencyGlide(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("tone frequency glide must be >= 0 and finite: %f", seconds)
		}
		cfg.glide = seconds
		return nil
	}
}

// WithVolumeRamp sets the ramp time of volume changes in seconds.
func WithVolumeRamp(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("tone volume ramp must be >= 0 and finite: %f", seconds)
		}
		cfg.volumeRamp = seconds
		return nil
	}
}

// WithSeed sets the seed of the atmosphere noise.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithSnapFrequencies sets the initial snap targets.
func WithSnapFrequencies(freqs []float64) Option {
	return func(cfg *config) error {
		cfg.snapFreqs = append([]float64(nil), freqs...)
		return nil
	}
}

// Processor is the host-facing tone generator.
type Processor struct {
	store *params.Store
	snaps atomic.Pointer[snap.Set]

	engine *modifier.Engine
	driver *Driver
	volume *smooth.Smoother

	volumeRamp float64
	isOn       bool
	prepared   bool
	blockSize  int

	gain  []float64
	view  buffer.Buffer
	apply func(id string, v float64)
}

// NewProcessor creates an unprepared processor. ProcessBlock outputs
// silence until Prepare succeeds.
func NewProcessor(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	sr := core.DefaultProcessorConfig().SampleRate
	engine, err := modifier.NewEngine(sr, modifier.WithSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	driver, err := NewDriver(sr, cfg.glide)
	if err != nil {
		return nil, err
	}
	volume, err := smooth.New(sr)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		store:      params.NewStore(),
		engine:     engine,
		driver:     driver,
		volume:     volume,
		volumeRamp: cfg.volumeRamp,
	}
	p.apply = p.applyParameter
	p.snaps.Store(snap.NewSet(cfg.snapFreqs))
	return p, nil
}

// Prepare configures the processor for a stream. It may be called again at
// any time processing is stopped; all phase and filter state restarts and
// the latest parameter values apply without ramps.
func (p *Processor) Prepare(sampleRate float64, blockSize, channels int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize, Channels: channels}
	if err := cfg.Validate(); err != nil {
		p.prepared = false
		return fmt.Errorf("tone: %w", err)
	}

	if err := p.engine.Prepare(sampleRate, blockSize, channels); err != nil {
		p.prepared = false
		return err
	}
	if err := p.driver.Prepare(sampleRate, blockSize); err != nil {
		p.prepared = false
		return err
	}
	if err := p.volume.SetSampleRate(sampleRate); err != nil {
		p.prepared = false
		return err
	}
	p.gain = core.EnsureLen(p.gain, blockSize)
	p.blockSize = blockSize
	p.view.Resize(channels, 0)

	p.store.MarkAllDirty()
	p.store.Drain(p.apply)
	p.volume.SetImmediate(p.volume.Target())
	p.driver.Settle()
	p.engine.Settle()

	p.prepared = true
	return nil
}

// ProcessBlock overwrites buf with the next block of audio. The buffer is
// silenced when the processor is unprepared or switched off. A buffer longer
// than the prepared block size is rendered in block-sized chunks.
func (p *Processor) ProcessBlock(buf *buffer.Buffer) {
	if !p.prepared || buf.NumChannels() == 0 {
		buf.Clear()
		return
	}

	p.store.Drain(p.apply)
	if !p.isOn {
		buf.Clear()
		return
	}

	p.driver.SetSnapSet(p.snaps.Load())
	n := buf.NumFrames()
	if n <= p.blockSize {
		p.render(buf)
		return
	}
	for start := 0; start < n; start += p.blockSize {
		p.render(buf.Window(&p.view, start, start+p.blockSize))
	}
}

func (p *Processor) render(buf *buffer.Buffer) {
	p.driver.Process(buf, p.engine)
	p.applyVolume(buf)
}

func (p *Processor) applyVolume(buf *buffer.Buffer) {
	if !p.volume.IsSmoothing() {
		buf.ApplyGain(p.volume.Current())
		return
	}
	gain := p.gain[:buf.NumFrames()]
	for i := range gain {
		gain[i] = p.volume.Next()
	}
	buf.MulMono(gain)
}

func (p *Processor) applyParameter(id string, v float64) {
	switch id {
	case params.Volume:
		p.volume.SetTarget(v, p.volumeRamp)
	case params.IsOn:
		p.isOn = params.Bool(v)
	default:
		p.driver.ParameterChanged(id, v)
		p.engine.ParameterChanged(id, v)
	}
}

// HandleParameterChanged publishes a control update. It is safe to call from
// any goroutine; the value applies at the start of the next block. Unknown
// ids are ignored.
func (p *Processor) HandleParameterChanged(id string, v float64) {
	p.store.Set(id, v)
}

// SetModifierEnabled toggles a modifier slot. Out-of-range slots are ignored.
func (p *Processor) SetModifierEnabled(slot int, enabled bool) {
	p.engine.SetModifierEnabled(slot, enabled)
}

// IsModifierEnabled reports whether a modifier slot is on.
func (p *Processor) IsModifierEnabled(slot int) bool {
	return p.engine.IsModifierEnabled(slot)
}

// SetSnapFrequencies replaces the snap targets with a copy of freqs. An
// empty list, or one without valid entries, disables snapping until the
// next non-empty list.
func (p *Processor) SetSnapFrequencies(freqs []float64) {
	p.snaps.Store(snap.NewSet(freqs))
}

// SnapSet returns the active snap targets.
func (p *Processor) SnapSet() *snap.Set { return p.snaps.Load() }

// SnapRange returns the frequency range of the control while snap mode is
// on: the span of the snap set.
func (p *Processor) SnapRange() (lo, hi float64) { return p.snaps.Load().Range() }

// Parameter returns the latest published value of id.
func (p *Processor) Parameter(id string) (float64, bool) { return p.store.Get(id) }

// Frequency returns the requested base frequency in Hz.
func (p *Processor) Frequency() float64 { return p.param(params.FreeFrequency) }

// OffsetHz returns the binaural offset in Hz.
func (p *Processor) OffsetHz() float64 { return p.param(params.BinauralOffset) }

// StereoWidth returns the binaural width in [0, 1].
func (p *Processor) StereoWidth() float64 { return p.param(params.BinauralWidth) }

// DisplayWidth returns the binaural width as the bipolar value shown on the
// control surface.
func (p *Processor) DisplayWidth() float64 { return modifier.DisplayWidth(p.StereoWidth()) }

// Prepared reports whether the last Prepare succeeded.
func (p *Processor) Prepared() bool { return p.prepared }

// BlockSize returns the prepared maximum block size.
func (p *Processor) BlockSize() int { return p.blockSize }

func (p *Processor) param(id string) float64 {
	v, _ := p.store.Get(id)
	return v
}
