package params

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// Parameter identifiers. The strings are part of the persisted state format.
const (
	FreeFrequency  = "freeFrequency"
	Volume         = "volume"
	IsOn           = "isOn"
	SnapOn         = "snapOn"
	BinauralOffset = "binauralOffset"
	BinauralWidth  = "binauralWidth"
	BreathRate     = "breathRate"
	BreathDepth    = "breathDepth"
	AtmoType       = "atmoType"
	AtmoLevel      = "atmoLevel"
)

// Harmonic orders covered by the harmonic bank.
const (
	MinHarmonic  = 2
	MaxHarmonic  = 9
	NumHarmonics = MaxHarmonic - MinHarmonic + 1
)

// DeviceMaxFrequency is the upper bound of FreeFrequency.
const DeviceMaxFrequency = 20000.0

// Kind describes how a parameter value is interpreted.
type Kind int

const (
	// Continuous values may take any value in [Min, Max].
	Continuous Kind = iota
	// Toggle values are booleans: above 0.5 means on.
	Toggle
	// Choice values are integer indices stored as floats.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Toggle:
		return "toggle"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Info describes one parameter.
type Info struct {
	ID      string
	Min     float64
	Max     float64
	Default float64
	Kind    Kind
}

// Clamp limits v to the parameter range. Choice values are rounded to the
// nearest index and toggles are normalized to 0 or 1. NaN maps to Default.
func (i Info) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return i.Default
	}
	switch i.Kind {
	case Toggle:
		return BoolValue(v > 0.5)
	case Choice:
		v = math.Round(v)
	}
	return core.Clamp(v, i.Min, i.Max)
}

// Bool interprets a toggle value.
func Bool(v float64) bool { return v > 0.5 }

// BoolValue converts b to a toggle value.
func BoolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var (
	table []Info
	index map[string]int

	// HarmonicIDs and HarmonicLevelIDs hold the ids of orders 2..9.
	HarmonicIDs      [NumHarmonics]string
	HarmonicLevelIDs [NumHarmonics]string
)

func init() {
	for h := range NumHarmonics {
		HarmonicIDs[h] = fmt.Sprintf("harmonic%d", h+MinHarmonic)
		HarmonicLevelIDs[h] = fmt.Sprintf("harmonic%dLevel", h+MinHarmonic)
	}

	table = []Info{
		{ID: FreeFrequency, Min: 0, Max: DeviceMaxFrequency, Default: 0, Kind: Continuous},
		{ID: Volume, Min: 0, Max: 1, Default: 0.5, Kind: Continuous},
		{ID: IsOn, Min: 0, Max: 1, Default: 1, Kind: Toggle},
		{ID: SnapOn, Min: 0, Max: 1, Default: 0, Kind: Toggle},
		{ID: BinauralOffset, Min: -15, Max: 15, Default: 0, Kind: Continuous},
		{ID: BinauralWidth, Min: 0, Max: 1, Default: 1, Kind: Continuous},
		{ID: BreathRate, Min: 0.01, Max: 1, Default: 0.25, Kind: Continuous},
		{ID: BreathDepth, Min: 0, Max: 1, Default: 0.5, Kind: Continuous},
	}
	for _, id := range HarmonicIDs {
		table = append(table, Info{ID: id, Min: 0, Max: 1, Default: 0, Kind: Toggle})
	}
	for _, id := range HarmonicLevelIDs {
		table = append(table, Info{ID: id, Min: 0, Max: 1, Default: 0.5, Kind: Continuous})
	}
	table = append(table,
		Info{ID: AtmoType, Min: 0, Max: 7, Default: 0, Kind: Choice},
		Info{ID: AtmoLevel, Min: 0, Max: 1, Default: 0.25, Kind: Continuous},
	)

	index = make(map[string]int, len(table))
	for i, info := range table {
		index[info.ID] = i
	}
}

// HarmonicID returns the enable parameter id for a harmonic order in 2..9.
func HarmonicID(order int) string {
	if order >= MinHarmonic && order <= MaxHarmonic {
		return HarmonicIDs[order-MinHarmonic]
	}
	return fmt.Sprintf("harmonic%d", order)
}

// HarmonicLevelID returns the level parameter id for a harmonic order in 2..9.
func HarmonicLevelID(order int) string {
	if order >= MinHarmonic && order <= MaxHarmonic {
		return HarmonicLevelIDs[order-MinHarmonic]
	}
	return fmt.Sprintf("harmonic%dLevel", order)
}

// ParseHarmonic reports whether id names a harmonic enable or level
// parameter, and which order it belongs to.
func ParseHarmonic(id string) (order int, level bool, ok bool) {
	i, found := index[id]
	if !found || i < harmonicBase || i >= harmonicBase+2*NumHarmonics {
		return 0, false, false
	}
	rel := i - harmonicBase
	return MinHarmonic + rel%NumHarmonics, rel >= NumHarmonics, true
}

// harmonicBase is the table index of harmonic2.
const harmonicBase = 8

// Lookup returns the description of id.
func Lookup(id string) (Info, bool) {
	i, ok := index[id]
	if !ok {
		return Info{}, false
	}
	return table[i], true
}

// All returns every parameter in table order.
func All() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Count is the number of parameters.
func Count() int { return len(table) }
