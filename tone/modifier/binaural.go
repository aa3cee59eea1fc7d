package modifier

import (
	"github.com/cwbudde/algo-tonegen/dsp/buffer"
	"github.com/cwbudde/algo-tonegen/tone/params"
)

// Binaural holds the stereo offset and width used by the tone stage. The
// stereo image is built while the oscillators run, so Process does nothing.
type Binaural struct {
	toggle

	offsetHz float64
	width    float64
}

// NewBinaural returns a disabled binaural modifier with default settings.
func NewBinaural() *Binaural {
	return &Binaural{
		offsetHz: defaultOf(params.BinauralOffset),
		width:    defaultOf(params.BinauralWidth),
	}
}

// Prepare validates the stream configuration.
func (b *Binaural) Prepare(sampleRate float64, blockSize, channels int) error {
	return validatePrepare("binaural", sampleRate, blockSize, channels)
}

// Process is a no-op.
func (b *Binaural) Process(*buffer.Buffer) {}

// ParameterChanged handles binauralOffset and binauralWidth.
func (b *Binaural) ParameterChanged(id string, v float64) {
	switch id {
	case params.BinauralOffset:
		b.offsetHz = clampTo(id, v)
	case params.BinauralWidth:
		b.width = clampTo(id, v)
	}
}

// OffsetHz returns the right-channel frequency offset in Hz.
func (b *Binaural) OffsetHz() float64 { return b.offsetHz }

// Width returns the side-signal scale in [0, 1] applied to the stereo image.
func (b *Binaural) Width() float64 { return b.width }

// DisplayWidth returns the width as the bipolar -1..+1 value shown on the
// control surface.
func (b *Binaural) DisplayWidth() float64 { return DisplayWidth(b.width) }

// DisplayWidth maps a 0..1 width to its bipolar display value.
func DisplayWidth(width float64) float64 { return width*2 - 1 }
