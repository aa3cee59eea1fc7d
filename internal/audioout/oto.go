//go:build !headless

package audioout

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

func init() {
	register("oto", openOto)
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoCfg  Config
)

// sharedOtoContext returns the process-wide oto context. oto allows only one.
func sharedOtoContext(cfg Config) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoCfg = cfg
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	if otoErr != nil {
		return nil, fmt.Errorf("audioout: oto: %w", otoErr)
	}
	if otoCfg.SampleRate != cfg.SampleRate || otoCfg.Channels != cfg.Channels {
		return nil, fmt.Errorf("audioout: oto context already running at %d Hz/%d ch (requested %d Hz/%d ch)",
			otoCfg.SampleRate, otoCfg.Channels, cfg.SampleRate, cfg.Channels)
	}
	return otoCtx, nil
}

type otoBackend struct {
	mu      sync.Mutex
	player  *oto.Player
	started bool
}

func openOto(cfg Config, r *Reader) (Backend, error) {
	ctx, err := sharedOtoContext(cfg)
	if err != nil {
		return nil, err
	}
	return &otoBackend{player: ctx.NewPlayer(r)}, nil
}

func (b *otoBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return fmt.Errorf("audioout: oto backend is closed")
	}
	if !b.started {
		b.player.Play()
		b.started = true
	}
	return nil
}

func (b *otoBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started && b.player != nil {
		b.player.Pause()
		b.started = false
	}
	return nil
}

func (b *otoBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	b.started = false
	return err
}

func (b *otoBackend) Name() string { return "oto" }
