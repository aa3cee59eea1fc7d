package modifier

import (
	"github.com/cwbudde/algo-tonegen/dsp/ambience"
	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Atmosphere sums a procedural background texture into every channel.
type Atmosphere struct {
	toggle

	gen    *ambience.Generator
	level  float64
	gainDB float64
	gain   float64

	scratch []float64
}

// NewAtmosphere returns a disabled atmosphere layer whose noise sequence
// starts from seed.
func NewAtmosphere(sampleRate float64, seed int64) (*Atmosphere, error) {
	gen, err := ambience.New(sampleRate, ambience.WithSeed(seed),
		ambience.WithType(ambience.TypeFromValue(defaultOf(params.AtmoType))))
	if err != nil {
		return nil, err
	}
	a := &Atmosphere{gen: gen}
	a.setLevel(defaultOf(params.AtmoLevel))
	return a, nil
}

// Prepare sizes the scratch buffer and clears all texture state.
func (a *Atmosphere) Prepare(sampleRate float64, blockSize, channels int) error {
	if err := validatePrepare("atmosphere", sampleRate, blockSize, channels); err != nil {
		return err
	}
	if err := a.gen.SetSampleRate(sampleRate); err != nil {
		return err
	}
	a.scratch = core.EnsureLen(a.scratch, blockSize)
	return nil
}

// Process adds the selected texture at the current gain.
func (a *Atmosphere) Process(buf *buffer.Buffer) {
	if !a.Enabled() || a.gen.Type() == ambience.Off {
		return
	}
	a.scratch = core.EnsureLen(a.scratch, buf.NumFrames())
	for i := range a.scratch {
		a.scratch[i] = a.gen.Next() * a.gain
	}
	buf.AddMono(a.scratch)
}

// ParameterChanged handles atmoType and atmoLevel. A type switch keeps the
// filter state of the generator.
func (a *Atmosphere) ParameterChanged(id string, v float64) {
	switch id {
	case params.AtmoType:
		a.gen.SetType(ambience.TypeFromValue(v))
	case params.AtmoLevel:
		a.setLevel(clampTo(id, v))
	}
}

// Type returns the selected texture.
func (a *Atmosphere) Type() ambience.Type { return a.gen.Type() }

// Level returns the 0..1 level control.
func (a *Atmosphere) Level() float64 { return a.level }

// GainDB returns the gain derived from the level control.
func (a *Atmosphere) GainDB() float64 { return a.gainDB }

// Generator exposes the underlying texture generator.
func (a *Atmosphere) Generator() *ambience.Generator { return a.gen }

func (a *Atmosphere) setLevel(level float64) {
	a.level = level
	a.gainDB = core.LevelToDB(level)
	a.gain = core.DBToLinear(a.gainDB)
}
