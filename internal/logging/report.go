// Package logging renders voice analysis reports, recording notes and the
// diagnostic log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/voicehealth/internal/audio"
	"github.com/linuxmatters/voicehealth/internal/processor"
)

// LiveSource names a report whose audio came from the microphone
const LiveSource = "live recording"

// reportSuffix is appended to the source name for saved reports
const reportSuffix = "-voice-report.txt"

// noteWidth is the wrap width for recording notes
const noteWidth = 72

// ============================================================================
// Interpretation Functions
// ============================================================================
// These turn raw features into short human-readable descriptions for the
// breakdown table. Thresholds mirror the suggestion and scoring rules.

// interpretPitchStd describes intonation from pitch standard deviation (Hz).
// Below 20 Hz the monotone suggestion fires.
func interpretPitchStd(std float64, frames int) string {
	switch {
	case frames == 0:
		return "no voiced pitch found"
	case std < 20:
		return "monotone"
	case std < 50:
		return "some variation"
	default:
		return "expressive"
	}
}

// interpretEnergy describes projection from mean frame RMS of the
// normalised signal. 0.02 is full marks.
func interpretEnergy(mean float64) string {
	switch {
	case mean < 0.005:
		return "very quiet"
	case mean < 0.02:
		return "quiet"
	default:
		return "well projected"
	}
}

func interpretFillers(count int) string {
	switch {
	case count == 0:
		return "none estimated"
	case count < 3:
		return "occasional"
	default:
		return "frequent"
	}
}

func interpretPauses(count int) string {
	switch {
	case count == 0:
		return "fluent"
	case count < 3:
		return "some long pauses"
	default:
		return "hesitant"
	}
}

// ============================================================================
// Report
// ============================================================================

// writeSection writes a section header with title and dashed underline.
// The underline length matches the title length.
func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// ReportData contains everything needed to render a report
type ReportData struct {
	Source     string // input path, or empty for a live take
	AnalysedAt time.Time
	Metadata   *audio.Metadata // optional
	Result     *processor.AnalysisResult
}

// FormatReport renders the human-readable report.
//
// Report structure:
// 1. Header - source, timestamp and duration
// 2. Summary - level, score and raw features
// 3. Score Breakdown - per-term table
// 4. Suggestions - delivery advice, or the confident message
// 5. Recording Notes - only when a recording-quality rule fires
func FormatReport(data ReportData) string {
	var sb strings.Builder
	writeReport(&sb, data)
	return sb.String()
}

func writeReport(w io.Writer, data ReportData) {
	r := data.Result
	if r == nil {
		return
	}

	writeReportHeader(w, data)
	writeSummary(w, r)
	writeBreakdown(w, r)
	writeSuggestions(w, r.Suggestions)
	writeRecordingNotes(w, GenerateRecordingTips(r))
}

// writeReportHeader outputs the source, timestamp and duration.
func writeReportHeader(w io.Writer, data ReportData) {
	source := LiveSource
	if data.Source != "" {
		source = filepath.Base(data.Source)
	}

	fmt.Fprintln(w, "Voice Health Report")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "Source:    %s\n", source)
	if !data.AnalysedAt.IsZero() {
		fmt.Fprintf(w, "Analysed:  %s\n", data.AnalysedAt.Format("2006-01-02 15:04:05 MST"))
	}
	d := data.Result.Diagnostics
	fmt.Fprintf(w, "Duration:  %s at %d Hz", formatDurationHMS(d.Duration), d.SampleRate)
	if m := data.Metadata; m != nil && m.Format != "" && m.Format != "live" {
		fmt.Fprintf(w, " (from %s, %d Hz %s)", m.Format, m.SampleRate, channelName(m.Channels))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

// writeSummary outputs the level, score and the raw features
func writeSummary(w io.Writer, r *processor.AnalysisResult) {
	f := r.Features
	fmt.Fprintf(w, "Confidence Level: %s (%.1f%%)\n", r.Level, r.Score)
	fmt.Fprintf(w, "Pitch Mean: %.1f Hz, Pitch STD: %.2f\n", f.PitchMean, f.PitchStd)
	fmt.Fprintf(w, "Energy Mean: %.5f, Energy STD: %.5f\n", f.EnergyMean, f.EnergyStd)
	fmt.Fprintf(w, "Pauses Detected: %d, Total Silence: %.2fs\n", f.PauseCount, f.TotalSilence)
	fmt.Fprintf(w, "Fillers Estimated: %d\n", f.FillerCount)
	fmt.Fprintln(w)
}

// writeBreakdown outputs the score terms as a table
func writeBreakdown(w io.Writer, r *processor.AnalysisResult) {
	writeSection(w, "Score Breakdown")
	fmt.Fprint(w, breakdownTable(r).String())
	fmt.Fprintf(w, "Score: %.1f of 100\n", r.Score)
	fmt.Fprintln(w)
}

func breakdownTable(r *processor.AnalysisResult) *MetricTable {
	f := r.Features
	b := r.Breakdown
	table := NewMetricTable("Measured", "Normalised", "Penalty")

	row := func(term processor.ScoreTerm, measured, unit, interpretation string) {
		table.AddRow(term.Name, []string{
			measured,
			fmt.Sprintf("%.2f", term.Normalised),
			formatMetricSigned(0-term.Penalty, 2),
		}, unit, interpretation)
	}
	row(b.Pitch, fmt.Sprintf("%.2f", f.PitchStd), "Hz", interpretPitchStd(f.PitchStd, len(r.Details.PitchSeries)))
	row(b.Energy, fmt.Sprintf("%.5f", f.EnergyMean), "RMS", interpretEnergy(f.EnergyMean))
	row(b.Filler, fmt.Sprintf("%d", f.FillerCount), "", interpretFillers(f.FillerCount))
	row(b.Pause, fmt.Sprintf("%d", f.PauseCount), "", interpretPauses(f.PauseCount))
	return table
}

// writeSuggestions outputs delivery advice, or the confident message
func writeSuggestions(w io.Writer, suggestions []string) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, processor.ConfidentMessage)
		return
	}
	fmt.Fprintln(w, "Suggestions to Improve:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "- %s\n", s)
	}
}

// writeRecordingNotes outputs recording-quality tips, if any
func writeRecordingNotes(w io.Writer, tips []RecordingTip) {
	if len(tips) == 0 {
		return
	}
	fmt.Fprintln(w)
	writeSection(w, "Recording Notes")
	for _, tip := range tips {
		fmt.Fprintf(w, "- %s\n", wrapText(tip.Message, noteWidth, "  "))
	}
}

// ReportPath derives the file a report for source is saved to. Live takes
// are named after the time of the take.
func ReportPath(source, dir string, at time.Time) string {
	name := "live-" + at.Format("20060102-150405")
	if source != "" {
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, name+reportSuffix)
}

// SaveReport writes a rendered report to path
func SaveReport(path, report string) error {
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// channelName returns a human-readable channel name
func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
