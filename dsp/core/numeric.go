package core

import "math"

const defaultEpsilon = 1e-12

// TwoPi is one full oscillator cycle in radians.
const TwoPi = 2 * math.Pi

// SilentLevel is the linear level at or below which LevelToDB reports SilentDB.
const SilentLevel = 0.0001

// SilentDB is the gain in dB used for levels that are effectively off.
const SilentDB = -60.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// One-pole filter states fed by decaying input would otherwise drift into
// the denormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// WrapPhase folds phase into [0, 2π).
func WrapPhase(phase float64) float64 {
	if phase >= 0 && phase < TwoPi {
		return phase
	}

	phase = math.Mod(phase, TwoPi)
	if phase < 0 {
		phase += TwoPi
	}
	// math.Mod of a tiny negative value can round back up to 2π.
	if phase >= TwoPi {
		phase = 0
	}

	return phase
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return mathPow10(db / 20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * mathLog10(linear)
}

// LevelToDB maps a 0..1 control level to dB. Levels at or below SilentLevel
// (including zero, negatives and NaN) map to SilentDB so the logarithm is
// never evaluated on a non-positive value.
func LevelToDB(level float64) float64 {
	if !(level > SilentLevel) {
		return SilentDB
	}

	return 20 * mathLog10(level)
}
