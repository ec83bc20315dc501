// This file provides the console display for --details.

package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/voicehealth/internal/audio"
	"github.com/linuxmatters/voicehealth/internal/processor"
)

// maxListedSpans caps the voiced-span listing
const maxListedSpans = 20

// DisplayAnalysisDetails prints the intermediate measurements behind a
// result: series sizes, voiced spans with timestamps and input diagnostics.
func DisplayAnalysisDetails(w io.Writer, source string, metadata *audio.Metadata, r *processor.AnalysisResult) {
	if r == nil {
		return
	}
	name := LiveSource
	if source != "" {
		name = filepath.Base(source)
	}

	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "DETAILS: %s\n", name)
	fmt.Fprintln(w, strings.Repeat("=", 70))

	d := r.Diagnostics
	fmt.Fprintf(w, "Duration:    %s\n", formatDurationHMS(d.Duration))
	fmt.Fprintf(w, "Sample Rate: %d Hz\n", d.SampleRate)
	if metadata != nil && metadata.SampleRate != 0 && metadata.SampleRate != d.SampleRate {
		fmt.Fprintf(w, "Source:      %d Hz %s %s, resampled\n", metadata.SampleRate, channelName(metadata.Channels), metadata.Format)
	}
	fmt.Fprintf(w, "Input Peak:  %s dBFS\n", formatMetricPeak(d.InputPeak, 1))
	if d.MainsFrequency > 0 {
		fmt.Fprintf(w, "Mains Hum:   %s dB at %d Hz\n", formatMetricDB(d.HumDB, 1), d.MainsFrequency)
	}
	fmt.Fprintln(w)

	writeAnalysisSection(w, "PITCH")
	det := r.Details
	fmt.Fprintf(w, "  Frames:         %d analysed, %d confident\n", det.PitchFrames, len(det.PitchSeries))
	if len(det.PitchSeries) > 0 {
		lo, hi := minMax(det.PitchSeries)
		fmt.Fprintf(w, "  Range:          %.1f - %.1f Hz\n", lo, hi)
	}
	fmt.Fprintf(w, "  Mean / STD:     %.1f / %.2f Hz\n", r.Features.PitchMean, r.Features.PitchStd)
	fmt.Fprintln(w)

	writeAnalysisSection(w, "ENERGY")
	fmt.Fprintf(w, "  Frames:         %d\n", len(det.EnergySeries))
	if len(det.EnergySeries) > 0 {
		_, hi := minMax(det.EnergySeries)
		fmt.Fprintf(w, "  Loudest Frame:  %s RMS\n", formatMetric(hi, 5))
	}
	fmt.Fprintf(w, "  Mean / STD:     %.5f / %.5f\n", r.Features.EnergyMean, r.Features.EnergyStd)
	fmt.Fprintln(w)

	writeAnalysisSection(w, "VOICED SPANS")
	rate := float64(d.SampleRate)
	for i, s := range det.Spans {
		if i == maxListedSpans {
			fmt.Fprintf(w, "  ... %d more\n", len(det.Spans)-maxListedSpans)
			break
		}
		start := time.Duration(float64(s.Start) / rate * float64(time.Second))
		end := time.Duration(float64(s.End) / rate * float64(time.Second))
		fmt.Fprintf(w, "  %2d. %8s - %-8s (%s)\n", i+1, formatTimestamp(start), formatTimestamp(end), formatTimestamp(end-start))
	}
	if len(det.Spans) == 0 {
		fmt.Fprintln(w, "  none")
	}
	fmt.Fprintf(w, "  Pauses:         %d, %.2fs total\n", r.Features.PauseCount, r.Features.TotalSilence)
	fmt.Fprintln(w)

	writeAnalysisSection(w, "FILLERS")
	fmt.Fprintf(w, "  Envelope Peaks: %d\n", det.EnvelopePeaks)
	fmt.Fprintf(w, "  Estimate:       %d\n", r.Features.FillerCount)
}

func minMax(series []float64) (float64, float64) {
	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// writeAnalysisSection writes a section header for analysis output.
func writeAnalysisSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
}

// formatDurationHMS formats duration as "Xh Ym Zs" or "Ym Zs" or "Z.Xs".
func formatDurationHMS(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int(seconds)
	if h := total / 3600; h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// formatTimestamp formats a duration as a timestamp string (e.g., "1m 32s" or "24.0s").
func formatTimestamp(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	total := int(d.Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
