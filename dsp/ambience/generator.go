package ambience

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

const defaultSeed = 1

const (
	pinkPole  = 0.99
	pinkBoost = 3.0

	windCutoff = 0.005
	windMidK   = 0.02
	windLowMix = 1.5
	windMidMix = 0.3
	windGain   = 0.4

	rainK          = 0.03
	rainDropChance = 0.0003
	rainDropAmp    = 0.15
	rainGain       = 0.2

	oceanNoise = 0.03
	oceanGain  = 0.6

	forestInput   = 0.5
	forestK       = 0.02
	forestLowMix  = 0.6
	forestHighMix = 0.1
	forestGain    = 0.3

	birdsInput       = 0.3
	birdsK           = 0.1
	birdsChirpChance = 0.0005
	birdsChirpAmp    = 0.2
	birdsGain        = 0.15
)

var (
	oceanFreqs = [3]float64{0.1, 0.3, 0.7}
	oceanAmps  = [3]float64{0.15, 0.10, 0.05}
)

// Option mutates generator construction parameters.
type Option func(*config) error

type config struct {
	seed int64
	typ  Type
}

// WithSeed sets the noise seed. Equal seeds give identical output.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithType selects the initial texture.
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("ambience type is unknown: %d", int(t))
		}
		cfg.typ = t
		return nil
	}
}

// Generator produces one texture sample per call to Next.
type Generator struct {
	sampleRate float64
	typ        Type
	seed       int64
	rng        *rand.Rand

	pink float64

	wind1, wind2, windMid float64

	rain float64

	oceanPhase [3]float64
	oceanInc   [3]float64

	forestLow float64
	birdsLow  float64
}

// New creates a generator for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Generator, error) {
	cfg := config{seed: defaultSeed, typ: Off}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	g := &Generator{
		typ:  cfg.typ,
		seed: cfg.seed,
		rng:  rand.New(rand.NewSource(cfg.seed)),
	}
	if err := g.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return g, nil
}

// SetSampleRate updates the sample rate and clears all filter and phase state.
func (g *Generator) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("ambience sample rate must be > 0 and finite: %f", sampleRate)
	}
	g.sampleRate = sampleRate
	for i, f := range oceanFreqs {
		g.oceanInc[i] = core.TwoPi * f / sampleRate
	}
	g.Reset()
	return nil
}

// Reset clears all filter and phase state. The noise sequence continues.
func (g *Generator) Reset() {
	g.pink = 0
	g.wind1, g.wind2, g.windMid = 0, 0, 0
	g.rain = 0
	g.oceanPhase = [3]float64{}
	g.forestLow = 0
	g.birdsLow = 0
}

// Reseed restarts the noise sequence from seed.
func (g *Generator) Reseed(seed int64) {
	g.seed = seed
	g.rng.Seed(seed)
}

// SetType selects the texture. Filter state is kept.
func (g *Generator) SetType(t Type) {
	if !t.Valid() {
		t = Off
	}
	g.typ = t
}

// Type returns the selected texture.
func (g *Generator) Type() Type { return g.typ }

// SampleRate returns the sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Next returns one sample of the selected texture.
func (g *Generator) Next() float64 {
	switch g.typ {
	case WhiteNoise:
		return g.white()
	case PinkNoise:
		return g.nextPink()
	case Wind:
		return g.nextWind()
	case Rain:
		return g.nextRain()
	case Ocean:
		return g.nextOcean()
	case Forest:
		return g.nextForest()
	case Birds:
		return g.nextBirds()
	default:
		return 0
	}
}

// Fill writes consecutive samples into dst.
func (g *Generator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}

// white returns uniform noise in [-1, 1).
func (g *Generator) white() float64 {
	return g.rng.Float64()*2 - 1
}

func (g *Generator) nextPink() float64 {
	g.pink = core.FlushDenormals(pinkPole*g.pink + (1-pinkPole)*g.white())
	return g.pink * pinkBoost
}

// nextWind cascades two very low one-pole lowpasses for the rumble and adds a
// faster-tracking mid band.
func (g *Generator) nextWind() float64 {
	noise := g.white()
	g.wind1 += windCutoff * (noise - g.wind1)
	g.wind2 += windCutoff * (g.wind1 - g.wind2)
	g.windMid += windMidK * (noise - g.windMid)
	return (g.wind2*windLowMix + g.windMid*windMidMix) * windGain
}

// nextRain is a highpass by subtraction with sparse droplet spikes.
func (g *Generator) nextRain() float64 {
	noise := g.white()
	highpass := noise - g.rain
	g.rain += rainK * (noise - g.rain)

	if g.rng.Float64() < rainDropChance {
		highpass += g.white() * rainDropAmp
	}
	return highpass * rainGain
}

func (g *Generator) nextOcean() float64 {
	waves := 0.0
	for i := range g.oceanPhase {
		waves += math.Sin(g.oceanPhase[i]) * oceanAmps[i]
		g.oceanPhase[i] += g.oceanInc[i]
		if g.oceanPhase[i] >= core.TwoPi {
			g.oceanPhase[i] -= core.TwoPi
		}
	}
	return (waves + g.white()*oceanNoise) * oceanGain
}

func (g *Generator) nextForest() float64 {
	noise := g.white() * forestInput
	g.forestLow += forestK * (noise - g.forestLow)
	high := noise - g.forestLow
	return (g.forestLow*forestLowMix + high*forestHighMix) * forestGain
}

func (g *Generator) nextBirds() float64 {
	noise := g.white() * birdsInput
	g.birdsLow += birdsK * (noise - g.birdsLow)
	chirp := noise - g.birdsLow

	if g.rng.Float64() < birdsChirpChance {
		chirp += g.white() * birdsChirpAmp
	}
	return chirp * birdsGain
}
