package buffer

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Buffer holds equally sized channels of float64 samples.
type Buffer struct {
	data     []float64
	channels [][]float64
	frames   int
}

// New returns a zero-filled buffer with the given channel and frame count.
// Negative sizes are treated as zero.
func New(channels, frames int) *Buffer {
	b := &Buffer{}
	b.Resize(channels, frames)
	return b
}

// FromChannels wraps existing channel slices without copying. The frame count
// is the length of the shortest channel.
func FromChannels(chs ...[]float64) *Buffer {
	frames := 0
	for i, ch := range chs {
		if i == 0 || len(ch) < frames {
			frames = len(ch)
		}
	}
	views := make([][]float64, len(chs))
	for i, ch := range chs {
		views[i] = ch[:frames:frames]
	}
	return &Buffer{channels: views, frames: frames}
}

// Resize sets the channel and frame count and clears the contents. Storage is
// reused when channels*frames fits the existing capacity.
func (b *Buffer) Resize(channels, frames int) {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}

	need := channels * frames
	if cap(b.data) >= need {
		b.data = b.data[:need]
	} else {
		b.data = make([]float64, need)
	}

	if cap(b.channels) >= channels {
		b.channels = b.channels[:channels]
	} else {
		b.channels = make([][]float64, channels)
	}

	for ch := range b.channels {
		start := ch * frames
		b.channels[ch] = b.data[start : start+frames : start+frames]
	}
	b.frames = frames
	b.Clear()
}

// Window points dst at frames [start, end) of b without copying and returns
// dst. The channel slice of dst is reused when large enough. Bounds are
// clamped to the frame count of b.
func (b *Buffer) Window(dst *Buffer, start, end int) *Buffer {
	start = max(0, min(start, b.frames))
	end = max(start, min(end, b.frames))

	if cap(dst.channels) >= len(b.channels) {
		dst.channels = dst.channels[:len(b.channels)]
	} else {
		dst.channels = make([][]float64, len(b.channels))
	}
	for ch, samples := range b.channels {
		dst.channels[ch] = samples[start:end:end]
	}
	dst.data = nil
	dst.frames = end - start
	return dst
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.channels) }

// NumFrames returns the number of samples per channel.
func (b *Buffer) NumFrames() int { return b.frames }

// Channel returns the samples of channel ch.
func (b *Buffer) Channel(ch int) []float64 { return b.channels[ch] }

// Channels returns all channel slices.
func (b *Buffer) Channels() [][]float64 { return b.channels }

// Clear sets every sample to 0.
func (b *Buffer) Clear() {
	for _, ch := range b.channels {
		core.Zero(ch)
	}
}

// Fill sets every sample of channel ch to v.
func (b *Buffer) Fill(ch int, v float64) {
	core.Fill(b.channels[ch], v)
}

// SetMono copies src into every channel.
func (b *Buffer) SetMono(src []float64) {
	n := min(len(src), b.frames)
	for _, ch := range b.channels {
		copy(ch[:n], src[:n])
	}
}

// AddMono sums src into every channel.
func (b *Buffer) AddMono(src []float64) {
	n := min(len(src), b.frames)
	if n == 0 {
		return
	}
	for _, ch := range b.channels {
		vecmath.AddBlockInPlace(ch[:n], src[:n])
	}
}

// MulMono multiplies every channel frame by frame with gain.
func (b *Buffer) MulMono(gain []float64) {
	n := min(len(gain), b.frames)
	if n == 0 {
		return
	}
	for _, ch := range b.channels {
		vecmath.MulBlockInPlace(ch[:n], gain[:n])
	}
}

// AddFrom sums the matching channels of other into b.
func (b *Buffer) AddFrom(other *Buffer) {
	chans := min(len(b.channels), len(other.channels))
	n := min(b.frames, other.frames)
	if n == 0 {
		return
	}
	for ch := 0; ch < chans; ch++ {
		vecmath.AddBlockInPlace(b.channels[ch][:n], other.channels[ch][:n])
	}
}

// ApplyGain scales every sample by g.
func (b *Buffer) ApplyGain(g float64) {
	if g == 1 {
		return
	}
	for _, ch := range b.channels {
		vecmath.ScaleBlock(ch, ch, g)
	}
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Interleave writes frames into dst as float32 in channel-interleaved order
// and returns the number of frames written.
func (b *Buffer) Interleave(dst []float32) int {
	chans := len(b.channels)
	if chans == 0 {
		return 0
	}
	frames := min(b.frames, len(dst)/chans)
	for i := 0; i < frames; i++ {
		base := i * chans
		for ch, samples := range b.channels {
			dst[base+ch] = float32(samples[i])
		}
	}
	return frames
}
