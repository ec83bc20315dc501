package processor

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/linuxmatters/voicehealth/internal/audio"
)

func TestAnalyzeVoice(t *testing.T) {
	t.Run("silence scores the energy penalty only", func(t *testing.T) {
		for _, secs := range []float64{0.01, 1, 3} {
			buf := &audio.Buffer{Samples: make([]float64, int(secs*22050)), SampleRate: 22050}
			result, err := AnalyzeVoice(buf, nil)
			if err != nil {
				t.Fatalf("AnalyzeVoice() error = %v", err)
			}
			f := result.Features
			if f.PitchMean != 0 || f.PitchStd != 0 || f.EnergyMean != 0 || f.EnergyStd != 0 {
				t.Errorf("%.2fs: features = %+v, want zero pitch and energy", secs, f)
			}
			if f.PauseCount != 0 || f.TotalSilence != 0 || f.FillerCount != 0 {
				t.Errorf("%.2fs: features = %+v, want no pauses or fillers", secs, f)
			}
			if result.Score != 75 {
				t.Errorf("%.2fs: score = %v, want 75", secs, result.Score)
			}
			if result.Level != LevelConfident {
				t.Errorf("%.2fs: level = %q, want %q", secs, result.Level, LevelConfident)
			}
		}
	})

	t.Run("1 kHz sine is out of the pitch band", func(t *testing.T) {
		cfg := testConfig()
		buf := generateTestSignal(t, TestSignalOptions{DurationSecs: 2, ToneFreq: 1000, ToneLevel: -6})
		result, err := AnalyzeVoice(buf, cfg)
		if err != nil {
			t.Fatalf("AnalyzeVoice() error = %v", err)
		}
		f := result.Features
		if len(result.Details.PitchSeries) != 0 || f.PitchMean != 0 {
			t.Errorf("pitch series = %d entries, mean %.1f; want empty", len(result.Details.PitchSeries), f.PitchMean)
		}
		if f.EnergyMean <= 0 {
			t.Errorf("EnergyMean = %v, want > 0", f.EnergyMean)
		}
		if f.PauseCount != 0 {
			t.Errorf("PauseCount = %d, want 0", f.PauseCount)
		}
		// at most one kept envelope peak per PeakDistance samples
		envLen := len(buf.Samples) - cfg.EnvelopeWindow + 1
		maxPeaks := envLen/cfg.PeakDistance + 1
		if result.Details.EnvelopePeaks > maxPeaks {
			t.Errorf("EnvelopePeaks = %d, want <= %d", result.Details.EnvelopePeaks, maxPeaks)
		}
		if f.FillerCount < 0 || f.FillerCount > maxPeaks/cfg.PeaksPerFiller {
			t.Errorf("FillerCount = %d, want small non-negative", f.FillerCount)
		}
	})

	t.Run("three bursts with two pauses", func(t *testing.T) {
		cfg := testConfig()
		gaps := []silenceGap{{Start: 0.5, Duration: 0.6}, {Start: 1.6, Duration: 0.8}}
		buf := generateTestSignal(t, TestSignalOptions{DurationSecs: 2.9, NoiseLevel: -12, SilenceGaps: gaps})

		result, err := AnalyzeVoice(buf, cfg)
		if err != nil {
			t.Fatalf("AnalyzeVoice() error = %v", err)
		}
		if result.Features.PauseCount != 2 {
			t.Fatalf("PauseCount = %d, want 2", result.Features.PauseCount)
		}
		want := gaps[0].Duration + gaps[1].Duration
		got := result.Features.TotalSilence
		if got > want+1e-9 || got < want-2*gapTolerance(cfg, buf.SampleRate) {
			t.Errorf("TotalSilence = %.3f s, want ~%.3f s", got, want)
		}
		if len(result.Details.Spans) != 3 {
			t.Errorf("Spans = %d, want 3", len(result.Details.Spans))
		}
	})

	t.Run("repeat runs are identical", func(t *testing.T) {
		cfg := testConfig()
		cfg.MainsFrequency = 50
		buf := generateTestSignal(t, TestSignalOptions{
			DurationSecs: 2, ToneFreq: 180, ToneLevel: -12, NoiseLevel: -30,
			SilenceGaps: []silenceGap{{Start: 0.8, Duration: 0.4}},
		})
		first, err := AnalyzeVoice(buf, cfg)
		if err != nil {
			t.Fatal(err)
		}
		second, err := AnalyzeVoice(buf, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("results differ between runs:\n%+v\n%+v", first, second)
		}
	})

	t.Run("caller data is untouched", func(t *testing.T) {
		buf := generateTestSignal(t, TestSignalOptions{DurationSecs: 0.5, ToneFreq: 200, ToneLevel: -20})
		orig := append([]float64(nil), buf.Samples...)
		cfg := &AnalysisConfig{} // sanitised internally
		if _, err := AnalyzeVoice(buf, cfg); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(orig, buf.Samples) {
			t.Error("AnalyzeVoice modified the input samples")
		}
		if cfg.FrameSize != 0 {
			t.Error("AnalyzeVoice modified the caller's config")
		}
	})

	t.Run("diagnostics", func(t *testing.T) {
		cfg := testConfig()
		buf := generateTestSignal(t, TestSignalOptions{DurationSecs: 1, ToneFreq: 200, ToneLevel: -6})
		result, err := AnalyzeVoice(buf, cfg)
		if err != nil {
			t.Fatal(err)
		}
		d := result.Diagnostics
		if math.Abs(d.InputPeak-DbToLinear(-6)) > 1e-3 {
			t.Errorf("InputPeak = %v, want ~0.5", d.InputPeak)
		}
		if d.Duration != 1 || d.SampleRate != 22050 {
			t.Errorf("Duration/SampleRate = %v/%d", d.Duration, d.SampleRate)
		}
		if !math.IsInf(d.HumDB, -1) || d.MainsFrequency != 0 {
			t.Errorf("hum measured without a mains frequency: %v", d.HumDB)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if _, err := AnalyzeVoice(nil, nil); !errors.Is(err, ErrNoBuffer) {
			t.Errorf("nil buffer error = %v, want ErrNoBuffer", err)
		}
		buf := &audio.Buffer{Samples: []float64{0.1}, SampleRate: 0}
		if _, err := AnalyzeVoice(buf, nil); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("zero rate error = %v, want ErrInvalidSampleRate", err)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		result, err := AnalyzeVoice(&audio.Buffer{SampleRate: 22050}, nil)
		if err != nil {
			t.Fatalf("AnalyzeVoice() error = %v", err)
		}
		if result.Score != 75 {
			t.Errorf("score = %v, want 75", result.Score)
		}
	})
}

// Pause detection compares frames with the loudest frame of the normalised
// buffer. Quiet takes are lifted by normalisation, but once the input peak
// approaches the normaliser's epsilon the output stays small and the power
// floor swallows the difference between speech and silence.
func TestPauseDetectionAtLowAmplitude(t *testing.T) {
	cfg := testConfig()
	gaps := []silenceGap{{Start: 0.5, Duration: 0.6}, {Start: 1.6, Duration: 0.8}}

	tests := []struct {
		name       string
		noiseLevel float64 // dBFS
		wantPauses int
	}{
		{"normal level", -12, 2},
		{"very quiet but above epsilon", -80, 2},
		{"an order below epsilon", -120, 2},
		{"far below epsilon", -180, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := generateTestSignal(t, TestSignalOptions{DurationSecs: 2.9, NoiseLevel: tt.noiseLevel, SilenceGaps: gaps})
			result, err := AnalyzeVoice(buf, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if result.Features.PauseCount != tt.wantPauses {
				t.Errorf("PauseCount = %d, want %d (input peak %.2g)", result.Features.PauseCount, tt.wantPauses, result.Diagnostics.InputPeak)
			}
		})
	}
}
