// Package peak locates spectral peaks in rendered audio.
//
// It windows a block of samples with a Hann window, transforms it with an
// FFT plan and reports the strongest bins with parabolic interpolation of
// frequency and amplitude. Amplitudes are normalized so that a steady sine of
// amplitude A reports a magnitude close to A.
//
//	res, err := peak.Analyze(left, 48000, peak.WithRange(20, 2000))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%.1f Hz\n", res.FrequencyHz)
package peak
