// Package processor handles voice analysis: feature extraction from a mono
// sample buffer and the confidence scoring built on top of it.
package processor

import "math"

// AnalysisConfig holds every tunable of the analysis pipeline.
// The filler constants in particular are heuristics, not calibrated values.
type AnalysisConfig struct {
	// Framing shared by the pitch tracker, energy analyser and pause detector
	FrameSize int `toml:"frame_size"` // samples per analysis frame
	HopSize   int `toml:"hop_size"`   // samples between frame starts

	// Pitch tracking
	PitchMinHz      float64 `toml:"pitch_min_hz"`      // lower edge of the voice band
	PitchMaxHz      float64 `toml:"pitch_max_hz"`      // upper edge of the voice band
	PitchFloorHz    float64 `toml:"pitch_floor_hz"`    // estimates at or below this are dropped
	PitchThreshold  float64 `toml:"pitch_threshold"`   // candidate peaks must exceed this fraction of the frame maximum
	MedianWindow    int     `toml:"median_window"`     // odd window for spike suppression
	MedianMinLength int     `toml:"median_min_length"` // series must be longer than this to be filtered

	// Pause detection
	SilenceTopDB float64 `toml:"silence_top_db"` // frames this far below the loudest frame are silent
	MinPauseSecs float64 `toml:"min_pause_secs"` // gaps must exceed this to count as pauses
	PowerFloor   float64 `toml:"power_floor"`    // amin guard for the dB conversion
	Epsilon      float64 `toml:"epsilon"`        // normaliser division guard

	// Filler approximation
	EnvelopeWindow int     `toml:"envelope_window"`  // moving-average length in samples
	PeakHeight     float64 `toml:"peak_height"`      // minimum envelope peak height
	PeakDistance   int     `toml:"peak_distance"`    // minimum spacing between peaks in samples
	PeaksPerFiller int     `toml:"peaks_per_filler"` // envelope peaks per estimated filler

	// Mains hum diagnostic: 0 leaves it disabled (callers resolve "auto")
	MainsFrequency int `toml:"mains_frequency"`
}

// DefaultAnalysisConfig returns the stock analysis settings
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		FrameSize: 2048,
		HopSize:   512,

		PitchMinHz:      80,
		PitchMaxHz:      600,
		PitchFloorHz:    50,
		PitchThreshold:  0.1,
		MedianWindow:    5,
		MedianMinLength: 5,

		SilenceTopDB: 30,
		MinPauseSecs: 0.25,
		PowerFloor:   1e-10,
		Epsilon:      1e-5,

		EnvelopeWindow: 1000,
		PeakHeight:     0.01,
		PeakDistance:   1000,
		PeaksPerFiller: 30,
	}
}

// Sanitize replaces out-of-range values with their defaults so a partially
// filled or hand-edited config never panics the pipeline.
func (cfg *AnalysisConfig) Sanitize() {
	def := DefaultAnalysisConfig()

	if cfg.FrameSize < 16 {
		cfg.FrameSize = def.FrameSize
	}
	if cfg.HopSize <= 0 || cfg.HopSize > cfg.FrameSize {
		cfg.HopSize = cfg.FrameSize / 4
	}
	if !positive(cfg.PitchMinHz) {
		cfg.PitchMinHz = def.PitchMinHz
	}
	if !positive(cfg.PitchMaxHz) || cfg.PitchMaxHz <= cfg.PitchMinHz {
		cfg.PitchMaxHz = math.Max(def.PitchMaxHz, cfg.PitchMinHz*2)
	}
	cfg.PitchFloorHz = sanitizeFloat(cfg.PitchFloorHz, def.PitchFloorHz)
	if !positive(cfg.PitchThreshold) || cfg.PitchThreshold >= 1 {
		cfg.PitchThreshold = def.PitchThreshold
	}
	if cfg.MedianWindow < 1 {
		cfg.MedianWindow = def.MedianWindow
	}
	if cfg.MedianWindow%2 == 0 {
		cfg.MedianWindow++
	}
	if cfg.MedianMinLength < 0 {
		cfg.MedianMinLength = def.MedianMinLength
	}
	if !positive(cfg.SilenceTopDB) {
		cfg.SilenceTopDB = def.SilenceTopDB
	}
	cfg.MinPauseSecs = sanitizeFloat(cfg.MinPauseSecs, def.MinPauseSecs)
	if !positive(cfg.PowerFloor) {
		cfg.PowerFloor = def.PowerFloor
	}
	if !positive(cfg.Epsilon) {
		cfg.Epsilon = def.Epsilon
	}
	if cfg.EnvelopeWindow < 1 {
		cfg.EnvelopeWindow = def.EnvelopeWindow
	}
	cfg.PeakHeight = sanitizeFloat(cfg.PeakHeight, def.PeakHeight)
	if cfg.PeakDistance < 1 {
		cfg.PeakDistance = def.PeakDistance
	}
	if cfg.PeaksPerFiller < 1 {
		cfg.PeaksPerFiller = def.PeaksPerFiller
	}
	if cfg.MainsFrequency < 0 {
		cfg.MainsFrequency = 0
	}
}

// sanitizeFloat returns defaultVal for NaN, Inf or negative values
func sanitizeFloat(val, defaultVal float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return defaultVal
	}
	return val
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// clamp restricts val to [lo, hi]
func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// DbToLinear converts decibels to a linear amplitude ratio
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDb converts a linear amplitude ratio to decibels.
// Returns -Inf for zero.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}
