package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
)

// Target is the processor surface a session drives.
type Target interface {
	Prepare(sampleRate float64, blockSize, channels int) error
	ProcessBlock(buf *buffer.Buffer)
	HandleParameterChanged(id string, v float64)
	SetModifierEnabled(slot int, enabled bool)
	SetSnapFrequencies(freqs []float64)
}

// RenderConfig describes an offline render.
type RenderConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
	Duration   time.Duration
}

// Validate reports the first invalid field.
func (cfg RenderConfig) Validate() error {
	pc := core.ProcessorConfig{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize, Channels: cfg.Channels}
	if err := pc.Validate(); err != nil {
		return err
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("%w: duration %v", ErrNegativeTime, cfg.Duration)
	}
	return nil
}

// Frames returns the number of frames covering Duration.
func (cfg RenderConfig) Frames() int {
	return sampleIndex(cfg.Duration, cfg.SampleRate)
}

// Render prepares t, then renders cfg.Duration of audio and hands each block
// to sink. Events at time zero apply before Prepare so they take effect
// without ramps. Later events apply exactly at their sample position; blocks
// are split there. The buffer passed to sink is reused between calls.
func Render(ctx context.Context, t Target, tl *Timeline, cfg RenderConfig, sink func(*buffer.Buffer) error) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	var events []Event
	if tl != nil {
		events = tl.Events()
	}

	next := 0
	for next < len(events) && events[next].At == 0 {
		apply(t, events[next])
		next++
	}
	if err := t.Prepare(cfg.SampleRate, cfg.BlockSize, cfg.Channels); err != nil {
		return fmt.Errorf("session: prepare: %w", err)
	}

	total := cfg.Frames()
	buf := buffer.New(cfg.Channels, cfg.BlockSize)
	for pos := 0; pos < total; {
		if err := ctx.Err(); err != nil {
			return err
		}
		for next < len(events) && sampleIndex(events[next].At, cfg.SampleRate) <= pos {
			apply(t, events[next])
			next++
		}

		n := min(cfg.BlockSize, total-pos)
		if next < len(events) {
			n = min(n, sampleIndex(events[next].At, cfg.SampleRate)-pos)
		}
		buf.Resize(cfg.Channels, n)
		t.ProcessBlock(buf)
		if err := sink(buf); err != nil {
			return err
		}
		pos += n
	}
	return nil
}

func apply(t Target, e Event) {
	switch e.Kind {
	case KindSet:
		t.HandleParameterChanged(e.ID, e.Value)
	case KindEnable:
		t.SetModifierEnabled(e.Slot, e.Enabled)
	case KindSnap:
		t.SetSnapFrequencies(e.Snap)
	}
}

func sampleIndex(d time.Duration, sampleRate float64) int {
	return int(math.Round(d.Seconds() * sampleRate))
}
