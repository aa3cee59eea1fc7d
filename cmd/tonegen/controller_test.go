package main

import (
	"context"
	"strings"
	"testing"

	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone"
	"github.com/cwbudde/algo-tonegen/tone/modifier"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

func newTestController(t *testing.T) *controller {
	t.Helper()
	proc, err := tone.NewProcessor()
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	proc.HandleParameterChanged(params.FreeFrequency, 440)
	ctl, err := newController(proc, snap.NewLibrary(), snap.DefaultPack)
	if err != nil {
		t.Fatalf("newController() error = %v", err)
	}
	return ctl
}

func press(ctl *controller, keys string) {
	for i := 0; i < len(keys); i++ {
		ctl.handle(keys[i])
	}
}

func TestControllerFrequencyKeys(t *testing.T) {
	ctl := newTestController(t)
	press(ctl, "+++>-")
	if got := ctl.param(params.FreeFrequency); got != 452 {
		t.Fatalf("frequency = %v, want 452", got)
	}
	for range 300 {
		ctl.handle('>')
	}
	if got := ctl.param(params.FreeFrequency); got != 2222 {
		t.Fatalf("frequency = %v, want clamp to default range 2222", got)
	}
	press(ctl, "gg") // default -> large -> full
	for range 10 {
		ctl.handle('>')
	}
	if got := ctl.param(params.FreeFrequency); got != 2322 {
		t.Fatalf("frequency = %v, want 2322 in full range", got)
	}
	press(ctl, "g") // wraps to small and clamps
	if got := ctl.param(params.FreeFrequency); got != 1111 {
		t.Fatalf("frequency = %v, want 1111 after range change", got)
	}
}

func TestControllerToggles(t *testing.T) {
	ctl := newTestController(t)
	press(ctl, " s35bt")

	if params.Bool(ctl.param(params.IsOn)) {
		t.Fatal("space should switch the tone off")
	}
	for _, id := range []string{params.SnapOn, params.HarmonicID(3), params.HarmonicID(5)} {
		if !params.Bool(ctl.param(id)) {
			t.Fatalf("%s not toggled on", id)
		}
	}
	if !ctl.proc.IsModifierEnabled(modifier.SlotBinaural) {
		t.Fatal("binaural not enabled")
	}
	if got := ctl.param(params.AtmoType); got != 1 {
		t.Fatalf("atmoType = %v, want 1", got)
	}
	press(ctl, "b3")
	if ctl.proc.IsModifierEnabled(modifier.SlotBinaural) || params.Bool(ctl.param(params.HarmonicID(3))) {
		t.Fatal("second press should toggle back off")
	}
}

func TestControllerVolumeAndOffsetClamp(t *testing.T) {
	ctl := newTestController(t)
	for range 30 {
		ctl.handle(']')
		ctl.handle('o')
	}
	if got := ctl.param(params.Volume); got != 1 {
		t.Fatalf("volume = %v, want 1", got)
	}
	if got := ctl.param(params.BinauralOffset); got != 15 {
		t.Fatalf("offset = %v, want 15", got)
	}
}

func TestControllerPackCycling(t *testing.T) {
	ctl := newTestController(t)
	ctl.handle('n')
	if got := ctl.packs[ctl.pack]; got != "Mood Lifter" {
		t.Fatalf("pack = %q, want Mood Lifter", got)
	}
	if got := ctl.proc.SnapSet().Frequencies(); len(got) != 4 {
		t.Fatalf("snap set = %v, want the Mood Lifter frequencies", got)
	}
	press(ctl, "ppp")
	if got := ctl.packs[ctl.pack]; got != "Focus Mode" {
		t.Fatalf("pack = %q, want wrap to Focus Mode", got)
	}
}

func TestControllerStatus(t *testing.T) {
	ctl := newTestController(t)
	press(ctl, "s2hb")
	got := ctl.status()
	for _, want := range []string{"ON 440 Hz", "snap[" + snap.DefaultPack + "]", "harmonic 2", "binaural +0.0 Hz w +1.00", "(Default)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q missing %q", got, want)
		}
	}
}

func TestUnknownPack(t *testing.T) {
	proc, err := tone.NewProcessor()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newController(proc, snap.NewLibrary(), "missing"); err == nil {
		t.Fatal("newController() expected error")
	}
}

func TestRunKeysStops(t *testing.T) {
	ctl := newTestController(t)

	keys := make(chan byte, 4)
	keys <- '+'
	keys <- 'q'
	keys <- '+'
	refreshes := 0
	runKeys(context.Background(), ctl, keys, func() { refreshes++ })
	if got := ctl.param(params.FreeFrequency); got != 441 {
		t.Fatalf("frequency = %v, want 441 (keys after q ignored)", got)
	}
	if refreshes < 1 {
		t.Fatal("status not refreshed")
	}

	closed := make(chan byte)
	close(closed)
	runKeys(context.Background(), ctl, closed, func() {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runKeys(ctx, ctl, make(chan byte), func() {})
}
