package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLevelToDB(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{level: 0, want: -60},
		{level: 0.0001, want: -60},
		{level: -0.5, want: -60},
		{level: math.NaN(), want: -60},
		{level: 1, want: 0},
		{level: 0.5, want: 20 * math.Log10(0.5)},
		{level: 0.1, want: -20},
	}

	for _, tt := range tests {
		got := LevelToDB(tt.level)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("LevelToDB(%v) = %v, want %v", tt.level, got, tt.want)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("LevelToDB(%v) produced non-finite %v", tt.level, got)
		}
	}

	if got := LevelToDB(0.5); math.Abs(got-(-6.0206)) > 1e-3 {
		t.Fatalf("LevelToDB(0.5) = %v, want about -6.02", got)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: math.Pi, want: math.Pi},
		{in: TwoPi, want: 0},
		{in: TwoPi + 1, want: 1},
		{in: -1, want: TwoPi - 1},
	}

	for _, tt := range tests {
		got := WrapPhase(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= TwoPi {
			t.Fatalf("WrapPhase(%v) = %v outside [0, 2π)", tt.in, got)
		}
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to flush to zero")
	}
	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("expected normal value to pass through")
	}
}

func TestSliceHelpers(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 || cap(out) != cap(buf) {
		t.Fatalf("EnsureLen() len=%d cap=%d, want 6/%d", len(out), cap(out), cap(buf))
	}

	Fill(out, 2)
	for i, v := range out {
		if v != 2 {
			t.Fatalf("out[%d] = %v, want 2", i, v)
		}
	}

	Zero(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(0) len = %d, want 0", len(got))
	}
}
