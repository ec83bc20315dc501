package logging

import (
	"strings"
	"testing"

	"github.com/linuxmatters/voicehealth/internal/processor"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		indent   string
		want     string
	}{
		{
			name:     "short_text_no_wrap",
			text:     "Hello world",
			maxWidth: 20,
			indent:   "  ",
			want:     "Hello world",
		},
		{
			name:     "long_text_wraps",
			text:     "Speak for at least a few seconds for a meaningful assessment",
			maxWidth: 30,
			indent:   "  ",
			want:     "Speak for at least a few\n  seconds for a meaningful\n  assessment",
		},
		{
			name:     "single_long_word",
			text:     "supercalifragilisticexpialidocious",
			maxWidth: 10,
			indent:   "  ",
			want:     "supercalifragilisticexpialidocious",
		},
		{
			name:     "empty_input",
			text:     "",
			maxWidth: 20,
			indent:   "  ",
			want:     "",
		},
		{
			name:     "exact_fit",
			text:     "exactly twenty chars",
			maxWidth: 20,
			indent:   "  ",
			want:     "exactly twenty chars",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.maxWidth, tt.indent); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}

// healthyResult is a 5 second take with a -6 dBFS peak that is voiced throughout
func healthyResult() *processor.AnalysisResult {
	return &processor.AnalysisResult{
		Details: processor.Details{
			Spans: []processor.VoicedSpan{{Start: 0, End: 5 * 22050}},
		},
		Diagnostics: processor.Diagnostics{
			InputPeak:  0.5,
			Duration:   5,
			SampleRate: 22050,
			HumDB:      -60,
		},
	}
}

func ruleIDs(tips []RecordingTip) []string {
	ids := make([]string, len(tips))
	for i, tip := range tips {
		ids[i] = tip.RuleID
	}
	return ids
}

func TestGenerateRecordingTips(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *processor.AnalysisResult)
		want   []string
	}{
		{"healthy take", func(r *processor.AnalysisResult) {}, nil},
		{"clipping", func(r *processor.AnalysisResult) { r.Diagnostics.InputPeak = 1.0 }, []string{"level_clipping"}},
		{"just under clipping", func(r *processor.AnalysisResult) { r.Diagnostics.InputPeak = 0.99 }, nil},
		{"too quiet", func(r *processor.AnalysisResult) { r.Diagnostics.InputPeak = 0.01 }, []string{"level_too_quiet"}},
		{"quiet", func(r *processor.AnalysisResult) { r.Diagnostics.InputPeak = 0.05 }, []string{"level_quiet"}},
		{"no signal", func(r *processor.AnalysisResult) { r.Diagnostics.InputPeak = 0 }, []string{"no_signal"}},
		{"short take", func(r *processor.AnalysisResult) {
			r.Diagnostics.Duration = 0.5
			r.Details.Spans = []processor.VoicedSpan{{Start: 0, End: 11025}}
		}, []string{"short_take"}},
		{"hum with mains known", func(r *processor.AnalysisResult) {
			r.Diagnostics.MainsFrequency = 50
			r.Diagnostics.HumDB = -10
		}, []string{"mains_hum"}},
		{"hum ignored without mains", func(r *processor.AnalysisResult) { r.Diagnostics.HumDB = -10 }, nil},
		{"mostly silence", func(r *processor.AnalysisResult) {
			r.Details.Spans = []processor.VoicedSpan{{Start: 0, End: 22050}}
		}, []string{"mostly_silence"}},
		{"quiet notes suppressed by too quiet", func(r *processor.AnalysisResult) {
			r.Diagnostics.InputPeak = 0.01
			r.Details.Spans = []processor.VoicedSpan{{Start: 0, End: 22050}}
		}, []string{"level_too_quiet"}},
		{"capped and ordered by priority", func(r *processor.AnalysisResult) {
			r.Diagnostics.InputPeak = 1.0
			r.Diagnostics.Duration = 0.5
			r.Diagnostics.MainsFrequency = 60
			r.Diagnostics.HumDB = -5
			r.Details.Spans = []processor.VoicedSpan{{Start: 0, End: 1000}}
		}, []string{"level_clipping", "short_take", "mains_hum"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := healthyResult()
			tt.mutate(r)
			got := ruleIDs(GenerateRecordingTips(r))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("tips = %v, want %v", got, tt.want)
			}
		})
	}

	if tips := GenerateRecordingTips(nil); tips != nil {
		t.Errorf("nil result gave %v", tips)
	}
}

func TestTipTooQuietGain(t *testing.T) {
	r := healthyResult()
	r.Diagnostics.InputPeak = 0.01 // -40 dBFS
	tip := tipTooQuiet(r)
	if tip == nil {
		t.Fatal("expected tip")
	}
	if !strings.Contains(tip.Message, "34 dB") {
		t.Errorf("message %q should suggest 34 dB of gain", tip.Message)
	}
}
