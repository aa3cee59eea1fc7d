package params

import (
	"math"
	"sync"
	"testing"
)

func TestTableIDs(t *testing.T) {
	want := []string{
		"freeFrequency", "volume", "isOn", "snapOn",
		"binauralOffset", "binauralWidth", "breathRate", "breathDepth",
		"harmonic2", "harmonic3", "harmonic4", "harmonic5",
		"harmonic6", "harmonic7", "harmonic8", "harmonic9",
		"harmonic2Level", "harmonic3Level", "harmonic4Level", "harmonic5Level",
		"harmonic6Level", "harmonic7Level", "harmonic8Level", "harmonic9Level",
		"atmoType", "atmoLevel",
	}
	all := All()
	if len(all) != len(want) || Count() != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
	}
	for i, info := range all {
		if info.ID != want[i] {
			t.Fatalf("All()[%d].ID = %q, want %q", i, info.ID, want[i])
		}
		if info.Default < info.Min || info.Default > info.Max {
			t.Fatalf("%s default %v outside [%v, %v]", info.ID, info.Default, info.Min, info.Max)
		}
	}
}

func TestDefaults(t *testing.T) {
	tests := map[string]float64{
		FreeFrequency:    0,
		Volume:           0.5,
		IsOn:             1,
		SnapOn:           0,
		BinauralOffset:   0,
		BinauralWidth:    1,
		BreathRate:       0.25,
		BreathDepth:      0.5,
		"harmonic5":      0,
		"harmonic5Level": 0.5,
		AtmoType:         0,
		AtmoLevel:        0.25,
	}
	for id, want := range tests {
		info, ok := Lookup(id)
		if !ok {
			t.Fatalf("Lookup(%q) not found", id)
		}
		if info.Default != want {
			t.Fatalf("%s default = %v, want %v", id, info.Default, want)
		}
	}
	if _, ok := Lookup("harmonic10"); ok {
		t.Fatal("Lookup(harmonic10) should fail")
	}
}

func TestClamp(t *testing.T) {
	offset, _ := Lookup(BinauralOffset)
	atmo, _ := Lookup(AtmoType)
	snapOn, _ := Lookup(SnapOn)
	vol, _ := Lookup(Volume)

	tests := []struct {
		name string
		info Info
		in   float64
		want float64
	}{
		{"offset low", offset, -40, -15},
		{"offset high", offset, 16, 15},
		{"offset inside", offset, 7.5, 7.5},
		{"choice rounds", atmo, 2.6, 3},
		{"choice clamps", atmo, 11, 7},
		{"toggle on", snapOn, 0.7, 1},
		{"toggle off", snapOn, 0.2, 0},
		{"toggle half is off", snapOn, 0.5, 0},
		{"toggle just above half", snapOn, 0.5000001, 1},
		{"nan default", vol, math.NaN(), 0.5},
	}
	for _, tt := range tests {
		if got := tt.info.Clamp(tt.in); got != tt.want {
			t.Fatalf("%s: Clamp(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestBoolThreshold(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		want bool
	}{{0, false}, {0.5, false}, {0.51, true}, {1, true}} {
		if got := Bool(tc.v); got != tc.want {
			t.Fatalf("Bool(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestParseHarmonic(t *testing.T) {
	for order := MinHarmonic; order <= MaxHarmonic; order++ {
		got, level, ok := ParseHarmonic(HarmonicID(order))
		if !ok || level || got != order {
			t.Fatalf("ParseHarmonic(%q) = %d, %v, %v", HarmonicID(order), got, level, ok)
		}
		got, level, ok = ParseHarmonic(HarmonicLevelID(order))
		if !ok || !level || got != order {
			t.Fatalf("ParseHarmonic(%q) = %d, %v, %v", HarmonicLevelID(order), got, level, ok)
		}
	}
	for _, id := range []string{Volume, AtmoType, "harmonic1", ""} {
		if _, _, ok := ParseHarmonic(id); ok {
			t.Fatalf("ParseHarmonic(%q) should fail", id)
		}
	}
}

func TestStoreInitialDrainDeliversDefaults(t *testing.T) {
	s := NewStore()
	seen := map[string]float64{}
	s.Drain(func(id string, v float64) { seen[id] = v })
	if len(seen) != Count() {
		t.Fatalf("first Drain delivered %d params, want %d", len(seen), Count())
	}
	if seen[Volume] != 0.5 {
		t.Fatalf("volume = %v, want 0.5", seen[Volume])
	}
	if s.Pending() {
		t.Fatal("Pending() after Drain")
	}
}

func TestStoreDeliversLatestOnce(t *testing.T) {
	s := NewStore()
	s.Drain(func(string, float64) {})

	if s.Set("nope", 1) {
		t.Fatal("Set(unknown) = true")
	}
	if s.Pending() {
		t.Fatal("unknown id marked the store dirty")
	}

	s.Set(FreeFrequency, 100)
	s.Set(FreeFrequency, 440)
	s.Set(BreathDepth, 2)

	var calls []string
	got := map[string]float64{}
	s.Drain(func(id string, v float64) {
		calls = append(calls, id)
		got[id] = v
	})
	if len(calls) != 2 {
		t.Fatalf("Drain delivered %v, want 2 calls", calls)
	}
	if got[FreeFrequency] != 440 {
		t.Fatalf("freeFrequency = %v, want 440", got[FreeFrequency])
	}
	if got[BreathDepth] != 1 {
		t.Fatalf("breathDepth = %v, want clamped 1", got[BreathDepth])
	}

	s.Drain(func(id string, _ float64) { t.Fatalf("unexpected redelivery of %s", id) })

	if v, ok := s.Get(FreeFrequency); !ok || v != 440 {
		t.Fatalf("Get() = %v, %v", v, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatal("Get(unknown) ok = true")
	}
}

func TestStoreMarkAllDirty(t *testing.T) {
	s := NewStore()
	s.Drain(func(string, float64) {})
	s.MarkAllDirty()
	n := 0
	s.Drain(func(string, float64) { n++ })
	if n != Count() {
		t.Fatalf("Drain after MarkAllDirty delivered %d, want %d", n, Count())
	}
}

func TestStoreConcurrentSet(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s.Set(FreeFrequency, float64(g*1000+i))
			}
		}(g)
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				s.Drain(func(id string, v float64) {
					if v < 0 || v > DeviceMaxFrequency {
						t.Errorf("%s = %v out of range", id, v)
					}
				})
			}
		}
	}()
	wg.Wait()
	close(done)
}

func TestStoreDrainDoesNotAllocate(t *testing.T) {
	s := NewStore()
	fn := func(string, float64) {}
	allocs := testing.AllocsPerRun(100, func() {
		s.Set(Volume, 0.3)
		s.Set(HarmonicLevelIDs[0], 0.2)
		s.Drain(fn)
	})
	if allocs != 0 {
		t.Fatalf("Set/Drain allocs = %v, want 0", allocs)
	}
}
