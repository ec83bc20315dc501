package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/linuxmatters/voicehealth/internal/processor"
)

// RecordingTip is a note about the quality of the recording itself, as
// opposed to the delivery advice the analysis produces.
type RecordingTip struct {
	Priority int    // Higher = more important (1-10)
	Message  string // Human-readable advice (1-2 sentences)
	RuleID   string // Identifier for testing/logging (e.g., "level_too_quiet")
}

// MaxRecordingTips is the maximum number of tips to return.
const MaxRecordingTips = 3

// Thresholds for the recording rules
const (
	clippingPeak     = 0.999 // linear peak treated as clipped
	tooQuietPeakDB   = -30.0 // dBFS
	quietPeakDB      = -20.0 // dBFS
	targetPeakDB     = -6.0  // dBFS a healthy take peaks around
	shortTakeSecs    = 1.0
	humThresholdDB   = -20.0 // hum power relative to total
	minVoicedPercent = 30.0
)

type tipRule func(r *processor.AnalysisResult) *RecordingTip

// GenerateRecordingTips inspects an analysis result and returns prioritised
// notes on recording quality, highest priority first.
func GenerateRecordingTips(r *processor.AnalysisResult) []RecordingTip {
	if r == nil {
		return nil
	}

	rules := []tipRule{
		tipClipping,
		tipTooQuiet,
		tipQuiet,
		tipShortTake,
		tipMainsHum,
		tipMostlySilence,
	}

	var tips []RecordingTip
	fired := make(map[string]bool)
	for _, rule := range rules {
		if tip := rule(r); tip != nil {
			tips = append(tips, *tip)
			fired[tip.RuleID] = true
		}
	}

	tips = applyExclusions(tips, fired)

	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})

	if len(tips) > MaxRecordingTips {
		tips = tips[:MaxRecordingTips]
	}
	return tips
}

// applyExclusions drops tips made redundant by a more specific one. A silent
// take is quiet and mostly silence by definition, so only "no signal" stays.
func applyExclusions(tips []RecordingTip, fired map[string]bool) []RecordingTip {
	var result []RecordingTip
	for _, tip := range tips {
		switch tip.RuleID {
		case "level_quiet", "mostly_silence":
			if fired["level_too_quiet"] || fired["no_signal"] {
				continue
			}
		}
		result = append(result, tip)
	}
	return result
}

// wrapText wraps text at word boundaries to fit within maxWidth columns.
// Continuation lines are prefixed with indent.
func wrapText(text string, maxWidth int, indent string) string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= maxWidth:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"+indent)
}

// tipClipping fires when the input reaches full scale
func tipClipping(r *processor.AnalysisResult) *RecordingTip {
	if r.Diagnostics.InputPeak < clippingPeak {
		return nil
	}
	return &RecordingTip{
		Priority: 10,
		RuleID:   "level_clipping",
		Message:  "Your recording is clipping - turn your microphone gain down by 6-10 dB to prevent distortion.",
	}
}

// tipTooQuiet fires when the peak is below -30 dBFS. A take with no signal
// at all gets its own message.
func tipTooQuiet(r *processor.AnalysisResult) *RecordingTip {
	peak := r.Diagnostics.InputPeak
	if peak == 0 {
		return &RecordingTip{
			Priority: 10,
			RuleID:   "no_signal",
			Message:  "No sound was captured - check that the right microphone is selected and not muted.",
		}
	}
	peakDB := processor.LinearToDb(peak)
	if peakDB >= tooQuietPeakDB {
		return nil
	}
	return &RecordingTip{
		Priority: 9,
		RuleID:   "level_too_quiet",
		Message:  fmt.Sprintf("Your microphone gain is too low - try increasing it by about %.0f dB.", targetPeakDB-peakDB),
	}
}

// tipQuiet fires when the peak sits between -30 and -20 dBFS
func tipQuiet(r *processor.AnalysisResult) *RecordingTip {
	peak := r.Diagnostics.InputPeak
	if peak == 0 {
		return nil
	}
	peakDB := processor.LinearToDb(peak)
	if peakDB < tooQuietPeakDB || peakDB >= quietPeakDB {
		return nil
	}
	return &RecordingTip{
		Priority: 6,
		RuleID:   "level_quiet",
		Message:  fmt.Sprintf("Your recording is a bit quiet - increasing your microphone gain by about %.0f dB would improve accuracy.", targetPeakDB-peakDB),
	}
}

// tipShortTake fires for takes under a second, too short for stable statistics
func tipShortTake(r *processor.AnalysisResult) *RecordingTip {
	if r.Diagnostics.Duration >= shortTakeSecs {
		return nil
	}
	return &RecordingTip{
		Priority: 8,
		RuleID:   "short_take",
		Message:  fmt.Sprintf("This take is only %.1f seconds long - speak for at least a few seconds for a meaningful assessment.", r.Diagnostics.Duration),
	}
}

// tipMainsHum fires when the mains frequency carries a large share of the
// spectral power. Only measured when a mains frequency is known.
func tipMainsHum(r *processor.AnalysisResult) *RecordingTip {
	d := r.Diagnostics
	if d.MainsFrequency == 0 || d.HumDB <= humThresholdDB {
		return nil
	}
	return &RecordingTip{
		Priority: 7,
		RuleID:   "mains_hum",
		Message:  fmt.Sprintf("There's a constant %d Hz hum in your recording - check for nearby power supplies, monitors, or chargers and move them further from your microphone.", d.MainsFrequency),
	}
}

// tipMostlySilence fires when less than 30% of the take is voiced
func tipMostlySilence(r *processor.AnalysisResult) *RecordingTip {
	pct := voicedPercent(r)
	if pct < 0 || pct >= minVoicedPercent {
		return nil
	}
	return &RecordingTip{
		Priority: 5,
		RuleID:   "mostly_silence",
		Message:  fmt.Sprintf("Only %.0f%% of the recording contains speech - start speaking promptly and keep going until the end.", pct),
	}
}

// voicedPercent returns the share of the take covered by voiced spans, or -1
// when the duration is unknown.
func voicedPercent(r *processor.AnalysisResult) float64 {
	d := r.Diagnostics
	total := d.Duration * float64(d.SampleRate)
	if total <= 0 {
		return -1
	}
	voiced := 0
	for _, s := range r.Details.Spans {
		voiced += s.End - s.Start
	}
	return 100 * float64(voiced) / total
}
