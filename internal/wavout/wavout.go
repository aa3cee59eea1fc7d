// Package wavout writes rendered blocks to PCM WAV files.
package wavout

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/dsp/core"
)

const pcmFormat = 1

// Writer streams planar float blocks into a WAV encoder as integer PCM.
// Samples outside [-1, 1] are clipped.
type Writer struct {
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	channels int
	scale    float64
	frames   int
	clipped  int
}

// NewWriter starts a WAV stream on w. bitDepth must be 16 or 24.
func NewWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavout: sample rate must be > 0: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("wavout: channel count must be > 0: %d", channels)
	}
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("wavout: bit depth must be 16 or 24: %d", bitDepth)
	}
	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		scale:    float64(int(1)<<(bitDepth-1) - 1),
	}, nil
}

// WriteBuffer appends every frame of b. b must have the writer's channel
// count.
func (w *Writer) WriteBuffer(b *buffer.Buffer) error {
	if b.NumChannels() != w.channels {
		return fmt.Errorf("wavout: buffer has %d channels, writer %d", b.NumChannels(), w.channels)
	}
	return w.write(b.Channels(), b.NumFrames())
}

// WriteChannels appends planar channel data. All channels must have equal
// length.
func (w *Writer) WriteChannels(chans [][]float64) error {
	if len(chans) != w.channels {
		return fmt.Errorf("wavout: got %d channels, writer %d", len(chans), w.channels)
	}
	frames := len(chans[0])
	for _, ch := range chans[1:] {
		if len(ch) != frames {
			return fmt.Errorf("wavout: channel lengths differ: %d vs %d", len(ch), frames)
		}
	}
	return w.write(chans, frames)
}

func (w *Writer) write(chans [][]float64, frames int) error {
	need := frames * w.channels
	if cap(w.buf.Data) < need {
		w.buf.Data = make([]int, need)
	}
	data := w.buf.Data[:need]
	for i := 0; i < frames; i++ {
		for ch, samples := range chans {
			data[i*w.channels+ch] = w.quantize(samples[i])
		}
	}
	w.buf.Data = data
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavout: %w", err)
	}
	w.frames += frames
	return nil
}

func (w *Writer) quantize(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 || v < -1 {
		w.clipped++
		v = core.Clamp(v, -1, 1)
	}
	return int(math.Round(v * w.scale))
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Clipped returns the number of samples that were outside [-1, 1].
func (w *Writer) Clipped() int { return w.clipped }

// Close finalizes the WAV header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wavout: %w", err)
	}
	return nil
}

// WriteFile writes planar channels to a new WAV file at path.
func WriteFile(path string, chans [][]float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavout: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("wavout: %w", cerr)
		}
	}()

	w, err := NewWriter(f, sampleRate, len(chans), bitDepth)
	if err != nil {
		return err
	}
	if err := w.WriteChannels(chans); err != nil {
		return err
	}
	return w.Close()
}
