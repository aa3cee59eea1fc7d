//go:build !headless

package audioout

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

func init() {
	register("ebiten", openEbiten)
}

var (
	ebitenOnce sync.Once
	ebitenCtx  *ebitaudio.Context
	ebitenRate int
)

func sharedEbitenContext(sampleRate int) (*ebitaudio.Context, error) {
	ebitenOnce.Do(func() {
		ebitenRate = sampleRate
		ebitenCtx = ebitaudio.NewContext(sampleRate)
	})
	if ebitenRate != sampleRate {
		return nil, fmt.Errorf("audioout: ebiten context already running at %d Hz (requested %d Hz)", ebitenRate, sampleRate)
	}
	return ebitenCtx, nil
}

type ebitenBackend struct {
	mu     sync.Mutex
	player *ebitaudio.Player
}

// openEbiten plays through ebiten's audio context, which mixes stereo
// float32 frames. Sources with another channel count are rejected.
func openEbiten(cfg Config, r *Reader) (Backend, error) {
	if cfg.Channels != 2 {
		return nil, fmt.Errorf("audioout: ebiten backend needs 2 channels, got %d", cfg.Channels)
	}
	ctx, err := sharedEbitenContext(cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	pl, err := ctx.NewPlayerF32(r)
	if err != nil {
		return nil, fmt.Errorf("audioout: ebiten: %w", err)
	}
	return &ebitenBackend{player: pl}, nil
}

func (b *ebitenBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return fmt.Errorf("audioout: ebiten backend is closed")
	}
	b.player.Play()
	return nil
}

func (b *ebitenBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Pause()
	}
	return nil
}

func (b *ebitenBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	b.player.Pause()
	err := b.player.Close()
	b.player = nil
	return err
}

func (b *ebitenBackend) Name() string { return "ebiten" }
