package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-tonegen/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithChannels(2),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2
}

func ExampleLevelToDB() {
	for _, level := range []float64{0, 0.5, 1} {
		fmt.Printf("%.2f -> %.2f dB\n", level, core.LevelToDB(level))
	}

	// Output:
	// 0.00 -> -60.00 dB
	// 0.50 -> -6.02 dB
	// 1.00 -> 0.00 dB
}
