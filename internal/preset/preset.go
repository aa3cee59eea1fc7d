// Package preset binds the initial instrument state to command-line flags
// and applies it to a tone.Processor.
package preset

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tonegen/dsp/ambience"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone"
	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Preset is the instrument state a command starts from.
type Preset struct {
	Frequency float64
	Volume    float64
	Snap      bool
	Pack      string
	Glide     float64
	Seed      int64

	BinauralOffset float64
	BinauralWidth  float64
	BreathRate     float64
	BreathDepth    float64
	Atmosphere     string
	AtmoLevel      float64

	// Harmonics lists enabled orders (2..9) as "2,3,5".
	Harmonics string
	// Modifiers lists enabled slots as "binaural,breath".
	Modifiers string
}

// Default returns the parameter defaults with a 432 Hz tone.
func Default() Preset {
	def := func(id string) float64 {
		info, _ := params.Lookup(id)
		return info.Default
	}
	return Preset{
		Frequency:      432,
		Volume:         def(params.Volume),
		Pack:           snap.DefaultPack,
		Glide:          0.02,
		Seed:           1,
		BinauralOffset: def(params.BinauralOffset),
		BinauralWidth:  def(params.BinauralWidth),
		BreathRate:     def(params.BreathRate),
		BreathDepth:    def(params.BreathDepth),
		Atmosphere:     ambience.Off.String(),
		AtmoLevel:      def(params.AtmoLevel),
	}
}

// Register binds the preset fields to fs, using the current values as
// defaults.
func (p *Preset) Register(fs *flag.FlagSet) {
	fs.Float64Var(&p.Frequency, "freq", p.Frequency, "tone frequency in Hz (below 1 Hz is silent)")
	fs.Float64Var(&p.Volume, "volume", p.Volume, "output volume 0..1")
	fs.BoolVar(&p.Snap, "snap", p.Snap, "quantize the frequency to the snap pack")
	fs.StringVar(&p.Pack, "pack", p.Pack, "snap pack name (see -list-packs)")
	fs.Float64Var(&p.Glide, "glide", p.Glide, "frequency glide in seconds (0 = immediate)")
	fs.Int64Var(&p.Seed, "seed", p.Seed, "atmosphere noise seed")
	fs.Float64Var(&p.BinauralOffset, "binaural", p.BinauralOffset, "binaural offset in Hz (-15..15)")
	fs.Float64Var(&p.BinauralWidth, "width", p.BinauralWidth, "binaural stereo width 0..1")
	fs.Float64Var(&p.BreathRate, "breath-rate", p.BreathRate, "breath rate in Hz (0.01..1)")
	fs.Float64Var(&p.BreathDepth, "breath-depth", p.BreathDepth, "breath floor gain 0..1")
	fs.StringVar(&p.Atmosphere, "atmo", p.Atmosphere, "atmosphere texture: "+typeList())
	fs.Float64Var(&p.AtmoLevel, "atmo-level", p.AtmoLevel, "atmosphere level 0..1")
	fs.StringVar(&p.Harmonics, "harmonics", p.Harmonics, "comma-separated harmonic orders 2..9 (enables the harmonic slot)")
	fs.StringVar(&p.Modifiers, "modifiers", p.Modifiers, "comma-separated modifier slots: binaural,breath,harmonic,atmosphere")
}

// Options returns the processor construction options.
func (p Preset) Options(lib *snap.Library) ([]tone.Option, error) {
	freqs, err := lib.Pack(p.Pack)
	if err != nil {
		return nil, err
	}
	return []tone.Option{
		tone.WithFrequencyGlide(p.Glide),
		tone.WithSeed(p.Seed),
		tone.WithSnapFrequencies(freqs),
	}, nil
}

// Changes resolves the preset into parameter changes and the modifier slots
// to enable.
func (p Preset) Changes() (map[string]float64, []int, error) {
	atmo, err := ambience.ParseType(p.Atmosphere)
	if err != nil {
		return nil, nil, err
	}
	orders, err := ParseHarmonics(p.Harmonics)
	if err != nil {
		return nil, nil, err
	}
	slots, err := ParseSlots(p.Modifiers)
	if err != nil {
		return nil, nil, err
	}

	set := map[string]float64{
		params.FreeFrequency:  p.Frequency,
		params.Volume:         p.Volume,
		params.SnapOn:         params.BoolValue(p.Snap),
		params.BinauralOffset: p.BinauralOffset,
		params.BinauralWidth:  p.BinauralWidth,
		params.BreathRate:     p.BreathRate,
		params.BreathDepth:    p.BreathDepth,
		params.AtmoType:       float64(atmo),
		params.AtmoLevel:      p.AtmoLevel,
	}
	for _, order := range orders {
		set[params.HarmonicID(order)] = 1
	}
	if len(orders) > 0 && !containsSlot(slots, modifier.SlotHarmonic) {
		slots = append(slots, modifier.SlotHarmonic)
	}
	if atmo != ambience.Off && !containsSlot(slots, modifier.SlotAtmosphere) {
		slots = append(slots, modifier.SlotAtmosphere)
	}
	return set, slots, nil
}

// Apply pushes the preset into proc.
func (p Preset) Apply(proc *tone.Processor) error {
	set, slots, err := p.Changes()
	if err != nil {
		return err
	}
	for id, v := range set {
		proc.HandleParameterChanged(id, v)
	}
	for _, slot := range slots {
		proc.SetModifierEnabled(slot, true)
	}
	return nil
}

// ParseHarmonics parses "2,3,5" into harmonic orders.
func ParseHarmonics(s string) ([]int, error) {
	var orders []int
	for _, field := range splitList(s) {
		order, err := strconv.Atoi(field)
		if err != nil || order < params.MinHarmonic || order > params.MaxHarmonic {
			return nil, fmt.Errorf("preset: invalid harmonic %q (expected %d..%d)", field, params.MinHarmonic, params.MaxHarmonic)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// ParseSlots parses "binaural,breath" into modifier slots.
func ParseSlots(s string) ([]int, error) {
	var slots []int
	for _, field := range splitList(s) {
		slot, err := modifier.ParseSlot(strings.ToLower(field))
		if err != nil {
			return nil, err
		}
		if !containsSlot(slots, slot) {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

func containsSlot(slots []int, slot int) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func typeList() string {
	names := make([]string, 0, len(ambience.Types()))
	for _, t := range ambience.Types() {
		names = append(names, t.String())
	}
	return strings.Join(names, "|")
}
