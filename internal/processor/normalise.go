package processor

import "math"

// NormaliseSignal scales samples to unit peak amplitude, returning a new
// slice and the input's peak absolute amplitude. The divisor is
// peak+epsilon, so an all-zero input yields an all-zero output.
func NormaliseSignal(samples []float64, epsilon float64) ([]float64, float64) {
	peak := PeakAmplitude(samples)
	out := make([]float64, len(samples))
	scale := 1.0 / (peak + epsilon)
	for i, s := range samples {
		out[i] = s * scale
	}
	return out, peak
}

// PeakAmplitude returns the largest absolute sample value
func PeakAmplitude(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}
