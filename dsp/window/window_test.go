package window

import (
	"math"
	"testing"
)

func requireNear(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHann(t *testing.T) {
	tests := []struct {
		name string
		size int
		opts []Option
		want []float64
	}{
		{name: "single", size: 1, want: []float64{1}},
		{name: "symmetric", size: 5, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "periodic", size: 4, opts: []Option{WithPeriodic()}, want: []float64{0, 0.5, 1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hann(tt.size, tt.opts...)
			if err != nil {
				t.Fatalf("Hann() error = %v", err)
			}
			requireNear(t, got, tt.want, 1e-15)
		})
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("Hann(0) expected error")
	}
}

func TestCoherentGain(t *testing.T) {
	w, _ := Hann(4096, WithPeriodic())
	g, err := CoherentGain(w)
	if err != nil {
		t.Fatalf("CoherentGain() error = %v", err)
	}
	if math.Abs(g-0.5) > 1e-12 {
		t.Fatalf("CoherentGain(hann) = %v, want 0.5", g)
	}
	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("CoherentGain(nil) expected error")
	}
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{2, 2, 2}, []float64{0, 0.5, 1})
	if err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}
	requireNear(t, out, []float64{0, 1, 2}, 0)
	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("mismatched lengths expected error")
	}
}
