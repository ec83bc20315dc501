package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/linuxmatters/voicehealth/internal/processor"
)

// DiagFileName is the diagnostic log written inside the log directory
const DiagFileName = "voicehealth.log"

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	diagMu   sync.Mutex
	diagOn   bool
)

// ResolveLogDir picks the diagnostic log directory: the flag value, then
// $VOICEHEALTH_LOG_PATH, then the user cache directory.
func ResolveLogDir(flagPath string) (string, error) {
	for _, p := range []string{flagPath, os.Getenv("VOICEHEALTH_LOG_PATH")} {
		if p == "" {
			continue
		}
		return filepath.Abs(p)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(cache, "voicehealth"), nil
}

// InitDiag opens (appending) the diagnostic log in dir
func InitDiag(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, DiagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open diagnostic log: %w", err)
	}

	diagMu.Lock()
	defer diagMu.Unlock()
	diagFile = f
	setDiagWriter(f)
	return nil
}

// InitDiagWriter sends diagnostics to w instead of a file
func InitDiagWriter(w io.Writer) {
	diagMu.Lock()
	defer diagMu.Unlock()
	setDiagWriter(w)
}

func setDiagWriter(w io.Writer) {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(cw).With().Timestamp().Int("pid", os.Getpid()).Logger()
	diagOn = true
}

// CloseDiag stops diagnostic logging and closes the log file
func CloseDiag() {
	diagMu.Lock()
	defer diagMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	diagOn = false
}

func enabled() bool {
	diagMu.Lock()
	defer diagMu.Unlock()
	return diagOn
}

func Info(msg string) {
	if enabled() {
		diagLog.Info().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if enabled() {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func Errorf(format string, args ...any) {
	if enabled() {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

// Capture records a completed live take
func Capture(device string, samples, sampleRate int, elapsed time.Duration) {
	if !enabled() {
		return
	}
	if device == "" {
		device = "default"
	}
	diagLog.Info().
		Str("device", device).
		Int("samples", samples).
		Int("rate", sampleRate).
		Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Msg("capture")
}

// AnalysisMetrics records every feature of one analysis run
func AnalysisMetrics(source string, r *processor.AnalysisResult, elapsed time.Duration) {
	if !enabled() || r == nil {
		return
	}
	f := r.Features
	ev := diagLog.Info().
		Str("source", source).
		Float64("duration_s", r.Diagnostics.Duration).
		Float64("input_peak", r.Diagnostics.InputPeak).
		Float64("pitch_mean_hz", f.PitchMean).
		Float64("pitch_std_hz", f.PitchStd).
		Int("pitch_frames", len(r.Details.PitchSeries)).
		Float64("energy_mean", f.EnergyMean).
		Float64("energy_std", f.EnergyStd).
		Int("pauses", f.PauseCount).
		Float64("silence_s", f.TotalSilence).
		Int("envelope_peaks", r.Details.EnvelopePeaks).
		Int("fillers", f.FillerCount).
		Float64("score", r.Score).
		Str("level", string(r.Level)).
		Float64("analysis_ms", float64(elapsed.Microseconds())/1000)
	if r.Diagnostics.MainsFrequency > 0 {
		ev = ev.Int("mains_hz", r.Diagnostics.MainsFrequency).Float64("hum_db", r.Diagnostics.HumDB)
	}
	ev.Msg("analysis")
}
