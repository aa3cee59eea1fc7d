package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-tonegen/dsp/buffer"
)

func ExampleBuffer() {
	b := buffer.New(2, 4)
	b.SetMono([]float64{1, 2, 3, 4})
	b.MulMono([]float64{1, 0.5, 0.5, 0})
	b.AddMono([]float64{0.25, 0.25, 0.25, 0.25})

	fmt.Println(b.Channel(0))
	fmt.Println(b.Channel(1))

	// Output:
	// [1.25 1.25 1.75 0.25]
	// [1.25 1.25 1.75 0.25]
}
