package tone

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/osc"
	"github.com/cwbudde/algo-tonegen/dsp/smooth"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Driver renders the base tone of free mode. Per sample it reads the
// smoothed frequency and either drives a single oscillator into every
// channel, snapping the frequency when snap mode is on, or a binaural pair
// into the first two channels at the unsnapped frequency.
type Driver struct {
	sampleRate float64
	glide      float64

	freq   *smooth.Smoother
	main   *osc.Oscillator
	offset *osc.Oscillator

	snapOn bool
	snaps  *snap.Set

	track []float64
	mono  []float64
}

// NewDriver creates a driver whose frequency glides over glideSeconds.
func NewDriver(sampleRate, glideSeconds float64) (*Driver, error) {
	if glideSeconds < 0 || math.IsNaN(glideSeconds) || math.IsInf(glideSeconds, 0) {
		return nil, fmt.Errorf("driver glide must be >= 0 and finite: %f", glideSeconds)
	}
	freq, err := smooth.New(sampleRate)
	if err != nil {
		return nil, err
	}
	main, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}
	offset, err := osc.New(sampleRate, osc.WithWaveform(osc.Quadrature))
	if err != nil {
		return nil, err
	}
	return &Driver{
		sampleRate: sampleRate,
		glide:      glideSeconds,
		freq:       freq,
		main:       main,
		offset:     offset,
	}, nil
}

// Prepare sizes the scratch buffers and restarts both oscillators.
func (d *Driver) Prepare(sampleRate float64, blockSize int) error {
	if err := d.freq.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := d.main.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := d.offset.SetSampleRate(sampleRate); err != nil {
		return err
	}
	d.sampleRate = sampleRate
	d.main.Reset()
	d.offset.Reset()
	d.track = core.EnsureLen(d.track, blockSize)
	d.mono = core.EnsureLen(d.mono, blockSize)
	return nil
}

// Settle jumps the frequency to its target.
func (d *Driver) Settle() {
	d.freq.SetImmediate(d.freq.Target())
}

// ParameterChanged handles freeFrequency and snapOn.
func (d *Driver) ParameterChanged(id string, v float64) {
	switch id {
	case params.FreeFrequency:
		d.freq.SetTarget(v, d.glide)
	case params.SnapOn:
		d.snapOn = params.Bool(v)
	}
}

// SetSnapSet replaces the snap targets. A nil set passes frequencies through.
func (d *Driver) SetSnapSet(s *snap.Set) { d.snaps = s }

// SnapOn reports whether snap mode is active.
func (d *Driver) SnapOn() bool { return d.snapOn }

// Frequency returns the current smoothed frequency before snapping.
func (d *Driver) Frequency() float64 { return d.freq.Current() }

// Track returns the per-sample base frequencies of the last block.
func (d *Driver) Track() []float64 { return d.track }

// Process overwrites buf with the base tone and adds the harmonic layer.
// The modifier chain runs on the mono path only; the binaural path is the
// stereo tone plus harmonics.
func (d *Driver) Process(buf *buffer.Buffer, engine *modifier.Engine) {
	n := buf.NumFrames()
	d.track = core.EnsureLen(d.track, n)

	if engine.IsModifierEnabled(modifier.SlotBinaural) && buf.NumChannels() >= 2 {
		d.renderBinaural(buf, engine.OffsetHz(), engine.StereoWidth())
	} else {
		d.renderMono(buf)
		engine.Process(buf)
	}
	engine.ProcessHarmonics(buf, d.track)
}

// nextFrequency advances the smoother and returns the frequency to play,
// snapped when quantize is set, or 0 when it falls below the audible threshold.
func (d *Driver) nextFrequency(quantize bool) float64 {
	f := d.freq.Next()
	if quantize {
		f = d.snaps.Nearest(f)
	}
	if osc.IsSilent(f) {
		return 0
	}
	return f
}

func (d *Driver) renderMono(buf *buffer.Buffer) {
	d.mono = core.EnsureLen(d.mono, buf.NumFrames())
	for i := range d.mono {
		f := d.nextFrequency(d.snapOn)
		d.track[i] = f
		if f == 0 {
			d.mono[i] = 0
			continue
		}
		d.main.SetFrequency(f)
		d.mono[i] = d.main.NextSample()
	}
	buf.SetMono(d.mono)
}

func (d *Driver) renderBinaural(buf *buffer.Buffer, offsetHz, width float64) {
	buf.Clear()
	left, right := buf.Channel(0), buf.Channel(1)
	for i := range d.track {
		f := d.nextFrequency(false)
		d.track[i] = f
		if f == 0 {
			continue
		}
		d.main.SetFrequency(f)
		d.offset.SetFrequency(f + offsetHz)
		l := d.main.NextSample()
		r := d.offset.NextSample()

		mid := 0.5 * (l + r)
		left[i] = mid + (l-mid)*width
		right[i] = mid + (r-mid)*width
	}
}
