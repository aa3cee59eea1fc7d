// Command tonerender renders the tone generator offline to a WAV file.
//
// Usage:
//
//	tonerender [flags]
//
// The instrument starts from the flag values. A Lua session script may
// change parameters over time; see package session for its functions.
//
// Examples:
//
//	tonerender -o a440.wav -freq 440 -duration 5s
//	tonerender -o beat.wav -freq 200 -binaural 10 -modifiers binaural -analyze
//	tonerender -o session.wav -script session.lua
//	tonerender -list-packs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/internal/preset"
	"github.com/cwbudde/algo-tonegen/internal/wavout"
	"github.com/cwbudde/algo-tonegen/measure/peak"
	"github.com/cwbudde/algo-tonegen/session"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone"
)

type options struct {
	out        string
	script     string
	duration   time.Duration
	sampleRate int
	blockSize  int
	channels   int
	bitDepth   int
	analyze    bool
	peaks      int
	listPacks  bool
	preset     preset.Preset
}

func main() {
	opts := options{preset: preset.Default()}
	flag.StringVar(&opts.out, "o", "tone.wav", "output WAV path")
	flag.StringVar(&opts.script, "script", "", "Lua session script")
	flag.DurationVar(&opts.duration, "duration", 0, "render length (default 10s, or the script length)")
	flag.IntVar(&opts.sampleRate, "sample-rate", 48000, "output sample rate")
	flag.IntVar(&opts.blockSize, "block", 512, "processing block size in frames")
	flag.IntVar(&opts.channels, "channels", 2, "output channel count")
	flag.IntVar(&opts.bitDepth, "bits", 16, "WAV bit depth: 16|24")
	flag.BoolVar(&opts.analyze, "analyze", false, "print the strongest spectral peaks per channel")
	flag.IntVar(&opts.peaks, "peaks", 3, "number of peaks reported by -analyze")
	flag.BoolVar(&opts.listPacks, "list-packs", false, "list snap packs and exit")
	opts.preset.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tonerender [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders the tone generator offline to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tonerender -o a440.wav -freq 440 -duration 5s\n")
		fmt.Fprintf(os.Stderr, "  tonerender -o beat.wav -freq 200 -binaural 10 -modifiers binaural -analyze\n")
		fmt.Fprintf(os.Stderr, "  tonerender -o session.wav -script session.lua\n")
		fmt.Fprintf(os.Stderr, "  tonerender -list-packs\n")
	}
	flag.Parse()

	lib := snap.NewLibrary()
	if opts.listPacks {
		if err := listPacks(os.Stdout, lib); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := run(ctx, opts, lib)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s: %s, %d frames, %d Hz, %d ch, %d bit\n",
		opts.out, rep.duration, rep.frames, opts.sampleRate, opts.channels, opts.bitDepth)
	if rep.clipped > 0 {
		log.Printf("warning: %d samples clipped", rep.clipped)
	}
	if opts.analyze {
		if err := printPeaks(os.Stdout, rep.peaks); err != nil {
			log.Fatal(err)
		}
	}
}

type report struct {
	frames   int
	duration time.Duration
	clipped  int
	peaks    [][]peak.Result
}

func run(ctx context.Context, opts options, lib *snap.Library) (report, error) {
	tl := session.NewTimeline()
	if opts.script != "" {
		var err error
		if tl, err = session.LoadLuaFile(opts.script); err != nil {
			return report{}, err
		}
	}

	duration := opts.duration
	if duration <= 0 {
		duration = 10 * time.Second
		if opts.script != "" && tl.End() > 0 {
			duration = tl.End()
		}
	}
	cfg := session.RenderConfig{
		SampleRate: float64(opts.sampleRate),
		BlockSize:  opts.blockSize,
		Channels:   opts.channels,
		Duration:   duration,
	}
	if err := cfg.Validate(); err != nil {
		return report{}, err
	}

	procOpts, err := opts.preset.Options(lib)
	if err != nil {
		return report{}, err
	}
	proc, err := tone.NewProcessor(procOpts...)
	if err != nil {
		return report{}, err
	}
	if err := opts.preset.Apply(proc); err != nil {
		return report{}, err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return report{}, fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w, err := wavout.NewWriter(f, opts.sampleRate, opts.channels, opts.bitDepth)
	if err != nil {
		return report{}, err
	}

	var capture [][]float64
	if opts.analyze {
		capture = make([][]float64, opts.channels)
	}
	sink := func(buf *buffer.Buffer) error {
		for ch := range capture {
			capture[ch] = append(capture[ch], buf.Channel(ch)...)
		}
		return w.WriteBuffer(buf)
	}
	if err := session.Render(ctx, proc, tl, cfg, sink); err != nil {
		return report{}, err
	}
	if err := w.Close(); err != nil {
		return report{}, err
	}
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return report{}, fmt.Errorf("close output: %w", err)
	}

	rep := report{frames: w.Frames(), duration: duration, clipped: w.Clipped()}
	for _, ch := range capture {
		res, err := analyze(ch, cfg.SampleRate, opts.peaks)
		if err != nil {
			return report{}, err
		}
		rep.peaks = append(rep.peaks, res)
	}
	return rep, nil
}

// analyze reports peaks over the last second so the frequency glide and
// the harmonic attack do not smear the result.
func analyze(signal []float64, sampleRate float64, n int) ([]peak.Result, error) {
	if tail := int(sampleRate); len(signal) > tail {
		signal = signal[len(signal)-tail:]
	}
	return peak.Peaks(signal, sampleRate, n, peak.WithRange(1, sampleRate/2))
}

func printPeaks(w io.Writer, chans [][]peak.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tRank\tFrequency [Hz]\tMagnitude\n"); err != nil {
		return err
	}
	for ch, results := range chans {
		for i, r := range results {
			if _, err := fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.4f\n", ch, i+1, r.FrequencyHz, r.Magnitude); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func listPacks(w io.Writer, lib *snap.Library) error {
	for _, name := range lib.Names() {
		freqs, err := lib.Pack(name)
		if err != nil {
			return err
		}
		labels := make([]string, len(freqs))
		for i, hz := range freqs {
			labels[i] = snap.FormatFrequency(hz)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, strings.Join(labels, ", ")); err != nil {
			return err
		}
	}
	return nil
}
