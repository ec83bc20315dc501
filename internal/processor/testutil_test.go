package processor

import (
	"math"
	"testing"

	"github.com/linuxmatters/voicehealth/internal/audio"
)

// silenceGap is a region forced to digital silence
type silenceGap struct {
	Start    float64 // seconds
	Duration float64 // seconds
}

// TestSignalOptions configures the synthetic audio to generate
type TestSignalOptions struct {
	DurationSecs float64      // Total duration in seconds
	SampleRate   int          // Sample rate (default: 22050)
	ToneFreq     float64      // Sine wave frequency in Hz (0 = no tone)
	ToneLevel    float64      // Tone level in dBFS (e.g., -12.0)
	NoiseLevel   float64      // White noise level in dBFS (0 = no noise)
	SilenceGaps  []silenceGap // Regions of silence
}

// generateTestSignal creates a synthetic mono buffer for testing.
// The signal can include a sine wave tone, white noise and silence gaps.
func generateTestSignal(t *testing.T, opts TestSignalOptions) *audio.Buffer {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = audio.AnalysisRate
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 2.0
	}

	totalSamples := int(opts.DurationSecs * float64(opts.SampleRate))
	samples := make([]float64, totalSamples)

	toneAmp := 0.0
	if opts.ToneFreq > 0 && opts.ToneLevel < 0 {
		toneAmp = math.Pow(10.0, opts.ToneLevel/20.0)
	}
	noiseAmp := 0.0
	if opts.NoiseLevel < 0 {
		noiseAmp = math.Pow(10.0, opts.NoiseLevel/20.0)
	}

	// Simple LCG for deterministic noise
	rngState := uint32(12345)
	nextRandom := func() float64 {
		rngState = rngState*1664525 + 1013904223
		return (float64(rngState)/float64(0xFFFFFFFF))*2.0 - 1.0
	}

	inGap := func(i int) bool {
		for _, g := range opts.SilenceGaps {
			start := int(g.Start * float64(opts.SampleRate))
			end := int((g.Start + g.Duration) * float64(opts.SampleRate))
			if i >= start && i < end {
				return true
			}
		}
		return false
	}

	for i := range samples {
		if inGap(i) {
			continue
		}
		var sample float64
		if toneAmp > 0 {
			ts := float64(i) / float64(opts.SampleRate)
			sample += toneAmp * math.Sin(2.0*math.Pi*opts.ToneFreq*ts)
		}
		if noiseAmp > 0 {
			sample += noiseAmp * nextRandom()
		}
		samples[i] = sample
	}

	return &audio.Buffer{Samples: samples, SampleRate: opts.SampleRate}
}

// concatTones joins constant-amplitude sine segments end to end
func concatTones(rate int, segSecs float64, freqs ...float64) *audio.Buffer {
	var samples []float64
	n := int(segSecs * float64(rate))
	for _, f := range freqs {
		for i := 0; i < n; i++ {
			samples = append(samples, 0.5*math.Sin(2*math.Pi*f*float64(i)/float64(rate)))
		}
	}
	return &audio.Buffer{Samples: samples, SampleRate: rate}
}

func testConfig() *AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	cfg.Sanitize()
	return cfg
}
