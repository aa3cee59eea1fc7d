package peak_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tonegen/measure/peak"
)

func ExampleAnalyze() {
	const sampleRate = 48000.0
	signal := make([]float64, 16384)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sampleRate)
	}

	res, err := peak.Analyze(signal, sampleRate)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f Hz\n", res.FrequencyHz)

	// Output:
	// 440 Hz
}
