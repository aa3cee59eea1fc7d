// Package testutil holds signal helpers shared by the package tests.
package testutil

import (
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
)

// Constant returns n samples of value. Tests use it as a control track,
// e.g. a fixed base frequency for the harmonic bank.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns n samples of 1.
func Ones(n int) []float64 { return Constant(1, n) }

// Sine returns n samples of amp*sin(2*pi*freqHz*i/sampleRate).
func Sine(freqHz, sampleRate, amp float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amp * math.Sin(step*float64(i))
	}
	return out
}

// Source is anything that renders audio block by block.
type Source interface {
	ProcessBlock(buf *buffer.Buffer)
}

// Render pulls frames samples from src in blocks of at most block frames
// and returns the concatenated channels.
func Render(src Source, channels, frames, block int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, 0, frames)
	}
	buf := buffer.New(channels, block)
	for done := 0; done < frames; {
		n := min(block, frames-done)
		buf.Resize(channels, n)
		src.ProcessBlock(buf)
		for ch := range out {
			out[ch] = append(out[ch], buf.Channel(ch)...)
		}
		done += n
	}
	return out
}
