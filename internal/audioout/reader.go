package audioout

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
)

// BytesPerSample is the size of one float32 little-endian sample.
const BytesPerSample = 4

// Source produces audio one block at a time.
type Source interface {
	ProcessBlock(buf *buffer.Buffer)
}

// Reader adapts a Source to an io.Reader of interleaved float32LE frames.
// Each Read renders as many blocks as needed; leftover bytes of a block are
// kept for the next call. Reader is meant for a single consumer goroutine
// and does not allocate after construction.
type Reader struct {
	src      Source
	buf      *buffer.Buffer
	samples  []float32
	pending  []byte
	encoded  []byte
	channels int
}

// NewReader creates a reader rendering blockSize frames per ProcessBlock.
func NewReader(src Source, channels, blockSize int) *Reader {
	channels = max(channels, 1)
	blockSize = max(blockSize, 1)
	return &Reader{
		src:      src,
		buf:      buffer.New(channels, blockSize),
		samples:  make([]float32, channels*blockSize),
		encoded:  make([]byte, channels*blockSize*BytesPerSample),
		channels: channels,
	}
}

// Read fills p completely. It never returns an error.
func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			r.render()
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	return n, nil
}

// Channels returns the interleaved channel count.
func (r *Reader) Channels() int { return r.channels }

func (r *Reader) render() {
	r.src.ProcessBlock(r.buf)
	frames := r.buf.Interleave(r.samples)
	count := frames * r.channels
	for i, s := range r.samples[:count] {
		binary.LittleEndian.PutUint32(r.encoded[i*BytesPerSample:], math.Float32bits(s))
	}
	r.pending = r.encoded[:count*BytesPerSample]
}
