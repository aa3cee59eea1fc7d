package ambience

import (
	"math"
	"testing"
)

func TestTypeFromValue(t *testing.T) {
	tests := []struct {
		v    float64
		want Type
	}{
		{v: 0, want: Off},
		{v: 1, want: WhiteNoise},
		{v: 4.0, want: Rain},
		{v: 4.6, want: Ocean},
		{v: 7, want: Birds},
		{v: 12, want: Birds},
		{v: -3, want: Off},
		{v: math.NaN(), want: Off},
	}
	for _, tt := range tests {
		if got := TypeFromValue(tt.v); got != tt.want {
			t.Fatalf("TypeFromValue(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(" " + typ.String() + " ")
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v", typ.String(), err)
		}
		if got != typ {
			t.Fatalf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}
	if _, err := ParseType("thunder"); err == nil {
		t.Fatal("ParseType(thunder) expected error")
	}
	if got := Type(42).String(); got != "Type(42)" {
		t.Fatalf("String() = %q, want Type(42)", got)
	}
}
