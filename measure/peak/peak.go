package peak

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-tonegen/dsp/core"
	"github.com/cwbudde/algo-tonegen/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptySignal is returned when there are no samples to analyze.
	ErrEmptySignal = errors.New("peak: signal is empty")
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("peak: sample rate must be positive and finite")
	// ErrNoPeak is returned when the search range contains no local maximum.
	ErrNoPeak = errors.New("peak: no peak in range")
)

// Result describes one spectral peak.
type Result struct {
	// FrequencyHz is the interpolated peak frequency.
	FrequencyHz float64
	// Magnitude is the interpolated amplitude estimate of the peak.
	Magnitude float64
	// Bin is the FFT bin holding the maximum.
	Bin int
	// BinHz is the bin spacing of the analysis.
	BinHz float64
}

// Option mutates analysis parameters.
type Option func(*config) error

type config struct {
	fftSize int
	lowHz   float64
	highHz  float64
}

// WithFFTSize sets the transform length. It is rounded up to a power of two.
// Longer signals are truncated, shorter ones zero-padded.
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < 4 {
			return fmt.Errorf("peak fft size must be >= 4: %d", n)
		}
		cfg.fftSize = nextPowerOf2(n)
		return nil
	}
}

// WithRange limits the search to [lowHz, highHz].
func WithRange(lowHz, highHz float64) Option {
	return func(cfg *config) error {
		if lowHz < 0 || highHz <= lowHz || math.IsNaN(lowHz) || math.IsNaN(highHz) {
			return fmt.Errorf("peak range must satisfy 0 <= low < high: [%f, %f]", lowHz, highHz)
		}
		cfg.lowHz = lowHz
		cfg.highHz = highHz
		return nil
	}
}

// Analyze returns the strongest peak of signal.
func Analyze(signal []float64, sampleRate float64, opts ...Option) (Result, error) {
	peaks, err := Peaks(signal, sampleRate, 1, opts...)
	if err != nil {
		return Result{}, err
	}
	return peaks[0], nil
}

// Peaks returns up to n local maxima of the magnitude spectrum, strongest first.
func Peaks(signal []float64, sampleRate float64, n int, opts ...Option) ([]Result, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}
	if n <= 0 {
		n = 1
	}

	cfg := config{highHz: sampleRate / 2}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.fftSize == 0 {
		cfg.fftSize = nextPowerOf2(max(len(signal), 4))
	}

	mag, err := magnitudeSpectrum(signal, cfg.fftSize)
	if err != nil {
		return nil, err
	}

	binHz := sampleRate / float64(cfg.fftSize)
	maxBin := len(mag) - 2
	lo := clampInt(int(math.Ceil(cfg.lowHz/binHz)), 1, maxBin)
	hi := clampInt(int(math.Floor(cfg.highHz/binHz)), lo, maxBin)

	var found []Result
	for k := lo; k <= hi; k++ {
		if mag[k] <= 0 || mag[k] < mag[k-1] || mag[k] <= mag[k+1] {
			continue
		}
		found = append(found, interpolate(mag, k, binHz))
	}
	if len(found) == 0 {
		return nil, ErrNoPeak
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Magnitude > found[j].Magnitude
	})
	if len(found) > n {
		found = found[:n]
	}
	return found, nil
}

// magnitudeSpectrum returns amplitude-normalized magnitudes of bins 0..N/2.
func magnitudeSpectrum(signal []float64, fftSize int) ([]float64, error) {
	segLen := min(len(signal), fftSize)
	seg := signal[:segLen]

	win, err := window.Hann(segLen)
	if err != nil {
		return nil, fmt.Errorf("peak: %w", err)
	}
	windowed, err := window.ApplyCoefficients(seg, win)
	if err != nil {
		return nil, fmt.Errorf("peak: %w", err)
	}
	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("peak: %w", err)
	}
	winSum := gain * float64(segLen)
	if winSum == 0 {
		winSum = 1
	}

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("peak: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("peak: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	scale := 2 / winSum
	vecmath.ScaleBlock(mag, mag, scale)
	return mag, nil
}

func interpolate(mag []float64, k int, binHz float64) Result {
	a, b, c := mag[k-1], mag[k], mag[k+1]
	delta := 0.0
	if den := a - 2*b + c; den != 0 {
		delta = 0.5 * (a - c) / den
	}
	delta = core.Clamp(delta, -0.5, 0.5)
	return Result{
		FrequencyHz: (float64(k) + delta) * binHz,
		Magnitude:   b - 0.25*(a-c)*delta,
		Bin:         k,
		BinHz:       binHz,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
