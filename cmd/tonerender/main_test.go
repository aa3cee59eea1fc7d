package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-tonegen/internal/preset"
	"github.com/cwbudde/algo-tonegen/snap"
)

func testOptions(t *testing.T) options {
	t.Helper()
	p := preset.Default()
	p.Glide = 0
	return options{
		out:        filepath.Join(t.TempDir(), "out.wav"),
		duration:   time.Second,
		sampleRate: 48000,
		blockSize:  256,
		channels:   2,
		bitDepth:   16,
		analyze:    true,
		peaks:      1,
		preset:     p,
	}
}

func TestRunBinaural(t *testing.T) {
	opts := testOptions(t)
	opts.preset.Frequency = 200
	opts.preset.BinauralOffset = 10
	opts.preset.Modifiers = "binaural"

	rep, err := run(context.Background(), opts, snap.NewLibrary())
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if rep.frames != 48000 {
		t.Fatalf("frames = %d, want 48000", rep.frames)
	}
	want := []float64{200, 210}
	for ch, w := range want {
		if got := rep.peaks[ch][0].FrequencyHz; math.Abs(got-w) > 1 {
			t.Fatalf("channel %d peak = %.2f Hz, want %.0f", ch, got, w)
		}
	}

	info, err := os.Stat(opts.out)
	if err != nil {
		t.Fatal(err)
	}
	if minSize := int64(48000 * 2 * 2); info.Size() < minSize {
		t.Fatalf("file size = %d, want >= %d", info.Size(), minSize)
	}
}

func TestRunScript(t *testing.T) {
	opts := testOptions(t)
	opts.duration = 0
	opts.script = filepath.Join(t.TempDir(), "s.lua")
	script := "set('freeFrequency', 300)\nwait(0.5)\nset('freeFrequency', 600)\nwait(1.5)\n"
	if err := os.WriteFile(opts.script, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	rep, err := run(context.Background(), opts, snap.NewLibrary())
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if rep.duration != 2*time.Second {
		t.Fatalf("duration = %v, want script length 2s", rep.duration)
	}
	if got := rep.peaks[0][0].FrequencyHz; math.Abs(got-600) > 1 {
		t.Fatalf("final peak = %.2f Hz, want 600", got)
	}
}

func TestRunErrors(t *testing.T) {
	lib := snap.NewLibrary()

	opts := testOptions(t)
	opts.preset.Pack = "missing"
	if _, err := run(context.Background(), opts, lib); err == nil {
		t.Fatal("unknown pack expected error")
	}

	opts = testOptions(t)
	opts.bitDepth = 12
	if _, err := run(context.Background(), opts, lib); err == nil {
		t.Fatal("bit depth 12 expected error")
	}

	opts = testOptions(t)
	opts.script = filepath.Join(t.TempDir(), "missing.lua")
	if _, err := run(context.Background(), opts, lib); err == nil {
		t.Fatal("missing script expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := run(ctx, testOptions(t), lib); err == nil {
		t.Fatal("cancelled context expected error")
	}
}

func TestListPacks(t *testing.T) {
	var out bytes.Buffer
	if err := listPacks(&out, snap.NewLibrary()); err != nil {
		t.Fatalf("listPacks() error = %v", err)
	}
	first, _, _ := strings.Cut(out.String(), "\n")
	if !strings.HasPrefix(first, "Deep Sleep: OFF, 40 Hz") {
		t.Fatalf("first line = %q", first)
	}
	if !strings.Contains(out.String(), snap.DefaultPack+": ") {
		t.Fatalf("default pack missing from:\n%s", out.String())
	}
}

func TestPrintPeaks(t *testing.T) {
	opts := testOptions(t)
	opts.preset.Frequency = 440
	rep, err := run(context.Background(), opts, snap.NewLibrary())
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := rep.peaks[1][0].FrequencyHz; math.Abs(got-440) > 1 {
		t.Fatalf("peak = %.2f Hz, want 440", got)
	}
	var out bytes.Buffer
	if err := printPeaks(&out, rep.peaks); err != nil {
		t.Fatalf("printPeaks() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "Channel") {
		t.Fatalf("report =\n%s", out.String())
	}
}
