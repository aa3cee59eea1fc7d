//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

const ln10 = 2.302585092994045684017991454684

// mathPow10 computes 10^x as e^(x*ln10).
func mathPow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

// mathLog10 computes log10(x) as ln(x)/ln10.
func mathLog10(x float64) float64 {
	return approx.FastLog(x) / ln10
}
