package processor

import (
	"errors"
	"math"
	"sync"

	"github.com/linuxmatters/voicehealth/internal/audio"
)

var (
	ErrNoBuffer          = errors.New("no audio buffer")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// FeatureSummary is the scalar reading of a recording that scoring and
// suggestions work from
type FeatureSummary struct {
	PitchMean    float64 // Hz, 0 when no confident pitch was found
	PitchStd     float64 // Hz
	EnergyMean   float64 // mean frame RMS of the normalised buffer
	EnergyStd    float64
	PauseCount   int
	TotalSilence float64 // seconds spent in qualifying pauses
	FillerCount  int     // envelope-peak proxy, not a word count
}

// Details carries the intermediate series behind a FeatureSummary
type Details struct {
	PitchSeries   []float64
	PitchFrames   int
	EnergySeries  []float64
	Spans         []VoicedSpan
	PauseGaps     []float64
	EnvelopePeaks int
}

// Diagnostics describes the input rather than the delivery
type Diagnostics struct {
	InputPeak      float64 // peak |x| before normalisation
	Duration       float64 // seconds
	SampleRate     int
	MainsFrequency int     // 0 when hum was not measured
	HumDB          float64 // -Inf when not measured
}

// AnalysisResult is the complete assessment of one recording
type AnalysisResult struct {
	Level       ConfidenceLevel
	Score       float64
	Suggestions []string
	Features    FeatureSummary
	Breakdown   Breakdown
	Details     Details
	Diagnostics Diagnostics
}

// AnalyzeVoice runs the analysis pipeline over a mono buffer.
//
// The buffer is normalised into a private copy, then pitch, energy, pauses
// and fillers are extracted concurrently from that copy. The result is a pure
// function of the samples, the sample rate and cfg. Short, empty or silent
// buffers produce a result; only a missing buffer or a non-positive sample
// rate is an error. A nil cfg uses DefaultAnalysisConfig.
func AnalyzeVoice(buf *audio.Buffer, cfg *AnalysisConfig) (*AnalysisResult, error) {
	if buf == nil {
		return nil, ErrNoBuffer
	}
	if buf.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	c := DefaultAnalysisConfig()
	if cfg != nil {
		*c = *cfg
		c.Sanitize()
	}

	normalised, peak := NormaliseSignal(buf.Samples, c.Epsilon)
	rate := buf.SampleRate

	var (
		wg     sync.WaitGroup
		pitch  PitchAnalysis
		energy EnergyAnalysis
		pauses PauseAnalysis
		filler FillerAnalysis
		humDB  = math.Inf(-1)
	)
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	run(func() { pitch = TrackPitch(normalised, rate, c) })
	run(func() { energy = AnalyzeEnergy(normalised, c) })
	run(func() { pauses = DetectPauses(normalised, rate, c) })
	run(func() { filler = ApproximateFillers(normalised, c) })
	if c.MainsFrequency > 0 {
		run(func() { humDB = MeasureHum(normalised, rate, c.MainsFrequency, c) })
	}
	wg.Wait()

	features := FeatureSummary{
		PitchMean:    pitch.Mean,
		PitchStd:     pitch.Std,
		EnergyMean:   energy.Mean,
		EnergyStd:    energy.Std,
		PauseCount:   pauses.Count,
		TotalSilence: pauses.TotalSilence,
		FillerCount:  filler.FillerCount,
	}
	score, breakdown := ScoreConfidence(features)

	return &AnalysisResult{
		Level:       LevelForScore(score),
		Score:       score,
		Suggestions: GenerateSuggestions(features),
		Features:    features,
		Breakdown:   breakdown,
		Details: Details{
			PitchSeries:   pitch.Series,
			PitchFrames:   pitch.Frames,
			EnergySeries:  energy.Series,
			Spans:         pauses.Spans,
			PauseGaps:     pauses.Gaps,
			EnvelopePeaks: len(filler.Peaks),
		},
		Diagnostics: Diagnostics{
			InputPeak:      peak,
			Duration:       buf.Duration(),
			SampleRate:     rate,
			MainsFrequency: c.MainsFrequency,
			HumDB:          humDB,
		},
	}, nil
}
