package ambience

import (
	"fmt"
	"math"
	"strings"
)

// Type selects a texture algorithm. Values match the integer-valued
// "atmoType" control.
type Type int

const (
	Off Type = iota
	WhiteNoise
	PinkNoise
	Wind
	Rain
	Ocean
	Forest
	Birds
)

var typeNames = [...]string{
	Off:        "off",
	WhiteNoise: "white",
	PinkNoise:  "pink",
	Wind:       "wind",
	Rain:       "rain",
	Ocean:      "ocean",
	Forest:     "forest",
	Birds:      "birds",
}

// Types returns all texture types in control order.
func Types() []Type {
	return []Type{Off, WhiteNoise, PinkNoise, Wind, Rain, Ocean, Forest, Birds}
}

// String returns the short texture name.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t names a known texture.
func (t Type) Valid() bool {
	return t >= Off && t <= Birds
}

// ParseType resolves a texture by name, case-insensitively.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Off, fmt.Errorf("ambience: unknown type %q", name)
}

// TypeFromValue converts a control value to a Type by rounding to the nearest
// integer and clamping into [Off, Birds]. NaN maps to Off.
func TypeFromValue(v float64) Type {
	if math.IsNaN(v) {
		return Off
	}
	r := math.Round(v)
	if r <= float64(Off) {
		return Off
	}
	if r >= float64(Birds) {
		return Birds
	}
	return Type(int(r))
}
