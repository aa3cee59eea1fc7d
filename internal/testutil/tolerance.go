package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tonegen/measure/peak"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSilent fails t unless every sample of every channel is exactly 0.
func RequireSilent(t *testing.T, chans [][]float64) {
	t.Helper()
	for ch, samples := range chans {
		for i, v := range samples {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want exact 0", ch, i, v)
			}
		}
	}
}

// RequirePeak fails t unless the strongest spectral peak of signal lies
// within tolHz of wantHz. It returns the measured peak.
func RequirePeak(t *testing.T, signal []float64, sampleRate, wantHz, tolHz float64) peak.Result {
	t.Helper()
	res, err := peak.Analyze(signal, sampleRate)
	if err != nil {
		t.Fatalf("peak.Analyze() error = %v", err)
	}
	if math.Abs(res.FrequencyHz-wantHz) > tolHz {
		t.Fatalf("peak = %.3f Hz, want %.3f +/- %.3f", res.FrequencyHz, wantHz, tolHz)
	}
	return res
}
