package processor

import (
	"cmp"
	"math"
	"slices"
)

// FillerAnalysis is the envelope-peak proxy for filler words. It counts
// bursts of loudness, not words: treat FillerCount as a coarse heuristic.
type FillerAnalysis struct {
	Peaks       []int // envelope peak positions in samples, ascending
	FillerCount int
}

// ApproximateFillers smooths |x| with a moving average of EnvelopeWindow
// samples, finds envelope peaks of at least PeakHeight spaced at least
// PeakDistance apart, and reports one filler per PeaksPerFiller peaks.
func ApproximateFillers(samples []float64, cfg *AnalysisConfig) FillerAnalysis {
	env := envelope(samples, cfg.EnvelopeWindow)
	peaks := findPeaks(env, cfg.PeakHeight, cfg.PeakDistance)
	return FillerAnalysis{
		Peaks:       peaks,
		FillerCount: len(peaks) / cfg.PeaksPerFiller,
	}
}

// envelope returns the moving average of |x| over full windows only, so the
// result has len(samples)-window+1 entries (none if the buffer is shorter).
func envelope(samples []float64, window int) []float64 {
	if len(samples) < window {
		return nil
	}
	out := make([]float64, len(samples)-window+1)
	sum := 0.0
	for _, s := range samples[:window] {
		sum += math.Abs(s)
	}
	out[0] = sum / float64(window)
	for i := 1; i < len(out); i++ {
		sum += math.Abs(samples[i+window-1]) - math.Abs(samples[i-1])
		out[i] = sum / float64(window)
	}
	return out
}

// findPeaks returns indices of local maxima in x with height >= minHeight,
// thinned so no two kept peaks are closer than distance. Flat tops resolve
// to their midpoint; the first and last samples are never peaks. Taller
// peaks win the spacing contest.
func findPeaks(x []float64, minHeight float64, distance int) []int {
	var peaks []int
	for i := 1; i < len(x)-1; {
		if x[i-1] >= x[i] {
			i++
			continue
		}
		ahead := i + 1
		for ahead < len(x)-1 && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] && x[i] >= minHeight {
			peaks = append(peaks, (i+ahead-1)/2)
		}
		i = ahead
	}
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	// visit peaks tallest first; equal heights go right to left
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(x[peaks[a]], x[peaks[b]])
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for o := len(order) - 1; o >= 0; o-- {
		j := order[o]
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	kept := peaks[:0]
	for i, p := range peaks {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
