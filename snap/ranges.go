package snap

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// DeviceMax is the highest frequency the free-frequency control accepts.
const DeviceMax = 20000.0

// FrequencyRange is a named span for the frequency control.
type FrequencyRange struct {
	Name     string
	Min, Max float64
}

var ranges = []FrequencyRange{
	{Name: "small", Min: 0, Max: 1111},
	{Name: "default", Min: 0, Max: 2222},
	{Name: "large", Min: 0, Max: 9999},
	{Name: "full", Min: 0, Max: DeviceMax},
}

// Ranges returns the preset frequency ranges, narrowest first.
func Ranges() []FrequencyRange {
	out := make([]FrequencyRange, len(ranges))
	copy(out, ranges)
	return out
}

// DefaultRange returns the range the control starts with.
func DefaultRange() FrequencyRange { return ranges[1] }

// RangeByName finds a preset range, case-insensitively.
func RangeByName(name string) (FrequencyRange, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range ranges {
		if r.Name == name {
			return r, nil
		}
	}
	return FrequencyRange{}, fmt.Errorf("snap: unknown range %q", name)
}

// Label renders the range as shown in the range menu.
func (r FrequencyRange) Label() string {
	return fmt.Sprintf("%.0f-%.0f Hz (%s)", r.Min, r.Max, strings.ToUpper(r.Name[:1])+r.Name[1:])
}

// Clamp limits hz to the range.
func (r FrequencyRange) Clamp(hz float64) float64 {
	return core.Clamp(hz, r.Min, r.Max)
}

// FormatFrequency renders a frequency for display: "OFF" below 1 Hz, else
// whole hertz.
func FormatFrequency(hz float64) string {
	if !(hz >= 1) {
		return "OFF"
	}
	return fmt.Sprintf("%d Hz", int(hz))
}
