// Command tonegen plays the tone generator live with keyboard control.
//
// Usage:
//
//	tonegen [flags]
//
// Keys are read from the terminal in raw mode; press q to quit. Without a
// terminal, tonegen plays the initial state until interrupted.
//
// Examples:
//
//	tonegen -freq 432
//	tonegen -freq 200 -binaural 8 -modifiers binaural,breath
//	tonegen -snap -pack "Focus Mode" -atmo rain -atmo-level 0.4
//	tonegen -backend ebiten -harmonics 2,3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cwbudde/algo-tonegen/internal/audioout"
	"github.com/cwbudde/algo-tonegen/internal/preset"
	"github.com/cwbudde/algo-tonegen/snap"
	"github.com/cwbudde/algo-tonegen/tone"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		blockSize  = flag.Int("block", 512, "processing block size in frames")
		backend    = flag.String("backend", "oto", "audio backend: "+strings.Join(audioout.Names(), "|"))
		duration   = flag.Duration("duration", 0, "stop after this long (0 = until quit)")
	)
	p := preset.Default()
	p.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tonegen [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays the tone generator live with keyboard control.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s\n", keyHelp)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tonegen -freq 432\n")
		fmt.Fprintf(os.Stderr, "  tonegen -freq 200 -binaural 8 -modifiers binaural,breath\n")
		fmt.Fprintf(os.Stderr, "  tonegen -snap -pack \"Focus Mode\" -atmo rain -atmo-level 0.4\n")
	}
	flag.Parse()

	const channels = 2
	lib := snap.NewLibrary()
	opts, err := p.Options(lib)
	if err != nil {
		log.Fatal(err)
	}
	proc, err := tone.NewProcessor(opts...)
	if err != nil {
		log.Fatal(err)
	}
	if err := p.Apply(proc); err != nil {
		log.Fatal(err)
	}
	if err := proc.Prepare(float64(*sampleRate), *blockSize, channels); err != nil {
		log.Fatal(err)
	}
	ctl, err := newController(proc, lib, p.Pack)
	if err != nil {
		log.Fatal(err)
	}

	out, err := audioout.Open(*backend, audioout.Config{
		SampleRate: *sampleRate,
		Channels:   channels,
		BlockSize:  *blockSize,
	}, proc)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := out.Start(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	tty, err := openTerminal()
	if err != nil {
		log.Printf("keyboard control disabled: %v", err)
		fmt.Printf("playing on %s: %s\n", out.Name(), ctl.status())
		<-ctx.Done()
		return
	}
	defer tty.Restore()

	tty.Println(keyHelp)
	tty.Statusf("%s", ctl.status())
	runKeys(ctx, ctl, tty.Keys(), func() { tty.Statusf("%s", ctl.status()) })
	tty.Println("")
}

// runKeys feeds keys to ctl until quit, the key stream ends or ctx is done.
// The status line is refreshed after every key and periodically so glides
// show up.
func runKeys(ctx context.Context, ctl *controller, keys <-chan byte, refresh func()) {
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-keys:
			if !ok || ctl.handle(key) {
				return
			}
			refresh()
		case <-tick.C:
			refresh()
		}
	}
}
