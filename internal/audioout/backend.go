package audioout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownBackend is returned by Open for unsupported backend names.
var ErrUnknownBackend = errors.New("audioout: unknown backend")

// Backend is a running output device.
type Backend interface {
	// Start begins pulling audio from the source.
	Start() error
	// Stop pauses playback. Start may resume it.
	Stop() error
	// Close releases the device.
	Close() error
	// Name identifies the backend.
	Name() string
}

// Config describes the stream a backend plays.
type Config struct {
	SampleRate int
	Channels   int
	BlockSize  int
}

func (cfg Config) validate() error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("audioout: sample rate must be > 0: %d", cfg.SampleRate)
	}
	if cfg.Channels <= 0 {
		return fmt.Errorf("audioout: channel count must be > 0: %d", cfg.Channels)
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("audioout: block size must be > 0: %d", cfg.BlockSize)
	}
	return nil
}

type opener func(cfg Config, r *Reader) (Backend, error)

var openers = map[string]opener{
	"null": openNull,
}

func register(name string, open opener) {
	openers[name] = open
}

// Names lists the backends available in this build.
func Names() []string {
	names := make([]string, 0, len(openers))
	for name := range openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the named backend playing src. The backend is stopped until
// Start is called.
func Open(name string, cfg Config, src Source) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	open, ok := openers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
	}
	return open(cfg, NewReader(src, cfg.Channels, cfg.BlockSize))
}

// nullBackend discards audio. It keeps the source untouched so headless
// builds and tests can run the control flow without a device.
type nullBackend struct {
	started bool
}

func openNull(Config, *Reader) (Backend, error) { return &nullBackend{}, nil }

func (b *nullBackend) Start() error {
	b.started = true
	return nil
}

func (b *nullBackend) Stop() error {
	b.started = false
	return nil
}

func (b *nullBackend) Close() error { return b.Stop() }

func (b *nullBackend) Name() string { return "null" }
