package processor

import "math"

// VoicedSpan is a non-silent region in samples; End is exclusive
type VoicedSpan struct {
	Start int
	End   int
}

// PauseAnalysis summarises the silent gaps between voiced spans
type PauseAnalysis struct {
	Spans        []VoicedSpan
	Gaps         []float64 // qualifying pause durations in seconds, in order
	Count        int
	TotalSilence float64 // seconds
}

// DetectPauses splits the buffer into voiced spans and counts the gaps
// between adjacent spans that last longer than MinPauseSecs.
//
// A frame is voiced when its power is within SilenceTopDB of the loudest
// frame. Powers are floored at PowerFloor before conversion, so a buffer
// with no energy at all is a single voiced span.
func DetectPauses(samples []float64, sampleRate int, cfg *AnalysisConfig) PauseAnalysis {
	spans := voicedSpans(samples, cfg)

	result := PauseAnalysis{Spans: spans}
	for i := 1; i < len(spans); i++ {
		gap := float64(spans[i].Start-spans[i-1].End) / float64(sampleRate)
		if gap > cfg.MinPauseSecs {
			result.Count++
			result.TotalSilence += gap
			result.Gaps = append(result.Gaps, gap)
		}
	}
	return result
}

// voicedSpans returns the ordered, non-overlapping voiced regions
func voicedSpans(samples []float64, cfg *AnalysisConfig) []VoicedSpan {
	if len(samples) == 0 {
		return nil
	}
	power := centredFramePower(samples, cfg.FrameSize, cfg.HopSize)

	peak := 0.0
	for _, p := range power {
		peak = math.Max(peak, p)
	}
	refDB := powerDB(peak, cfg.PowerFloor)

	var spans []VoicedSpan
	first := -1
	closeSpan := func(last int) {
		spans = append(spans, VoicedSpan{
			Start: first * cfg.HopSize,
			End:   min(len(samples), (last+1)*cfg.HopSize),
		})
		first = -1
	}
	for i, p := range power {
		voiced := powerDB(p, cfg.PowerFloor)-refDB > -cfg.SilenceTopDB
		switch {
		case voiced && first < 0:
			first = i
		case !voiced && first >= 0:
			closeSpan(i - 1)
		}
	}
	if first >= 0 {
		closeSpan(len(power) - 1)
	}
	return spans
}

// powerDB converts a power ratio to decibels, flooring at amin
func powerDB(p, amin float64) float64 {
	return 10 * math.Log10(math.Max(p, amin))
}
