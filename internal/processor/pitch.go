package processor

import (
	"slices"
)

// PitchAnalysis is the fundamental-frequency track of a buffer
type PitchAnalysis struct {
	Series []float64 // confident estimates in Hz, after median smoothing
	Frames int       // frames analysed, confident or not
	Mean   float64
	Std    float64
}

// TrackPitch estimates a per-frame fundamental frequency restricted to the
// voice band [PitchMinHz, PitchMaxHz).
//
// Each frame's candidates are spectral local maxima inside the band that
// exceed PitchThreshold times the frame's largest magnitude anywhere in the
// spectrum. The strongest candidate is refined by parabolic interpolation.
// Frames without a candidate, or whose estimate is at or below PitchFloorHz,
// are left out of the series rather than recorded as zero.
func TrackPitch(samples []float64, sampleRate int, cfg *AnalysisConfig) PitchAnalysis {
	binHz := float64(sampleRate) / float64(cfg.FrameSize)
	nBins := cfg.FrameSize/2 + 1

	// band bins, leaving a neighbour on each side for the local-max test
	lo := max(1, ceilDiv(cfg.PitchMinHz, binHz))
	hi := min(nBins-2, ceilDiv(cfg.PitchMaxHz, binHz)-1)

	var series []float64
	frames := forEachSpectrum(samples, cfg.FrameSize, cfg.HopSize, func(_ int, mags []float64) {
		if lo > hi {
			return
		}
		threshold := cfg.PitchThreshold * slices.Max(mags)

		best := -1
		for k := lo; k <= hi; k++ {
			m := mags[k]
			if m <= threshold || m <= mags[k-1] || m < mags[k+1] {
				continue
			}
			if best < 0 || m > mags[best] {
				best = k
			}
		}
		if best < 0 {
			return
		}

		f0 := (float64(best) + parabolicShift(mags[best-1], mags[best], mags[best+1])) * binHz
		if f0 > cfg.PitchFloorHz {
			series = append(series, f0)
		}
	})

	if len(series) > cfg.MedianMinLength {
		series = medianFilter(series, cfg.MedianWindow)
	}
	mean, std := meanStd(series)

	return PitchAnalysis{Series: series, Frames: frames, Mean: mean, Std: std}
}

// parabolicShift returns the fractional bin offset of the vertex of the
// parabola through three neighbouring magnitudes, in [-0.5, 0.5] for a peak.
func parabolicShift(left, centre, right float64) float64 {
	denom := 2*centre - left - right
	if denom == 0 {
		return 0
	}
	return 0.5 * (right - left) / denom
}

// medianFilter applies a sliding median of an odd window. Near the edges the
// window shrinks to the samples available.
func medianFilter(series []float64, size int) []float64 {
	half := size / 2
	out := make([]float64, len(series))
	scratch := make([]float64, 0, size)
	for i := range series {
		scratch = append(scratch[:0], series[max(0, i-half):min(len(series), i+half+1)]...)
		out[i] = median(scratch)
	}
	return out
}

// median sorts vals in place and returns the middle value, or the mean of
// the two middle values for an even count.
func median(vals []float64) float64 {
	slices.Sort(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// ceilDiv returns ceil(a/b) as an int
func ceilDiv(a, b float64) int {
	q := a / b
	i := int(q)
	if float64(i) < q {
		i++
	}
	return i
}
