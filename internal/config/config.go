// Package config loads voicehealth settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/linuxmatters/voicehealth/internal/audio"
	"github.com/linuxmatters/voicehealth/internal/mains"
	"github.com/linuxmatters/voicehealth/internal/processor"
)

// FileName is the config file looked up in the user config directory
const FileName = "config.toml"

// Config is the full set of user settings
type Config struct {
	Analysis processor.AnalysisConfig `toml:"analysis"`
	Capture  CaptureConfig            `toml:"capture"`
	Report   ReportConfig             `toml:"report"`
	Log      LogConfig                `toml:"log"`
}

type CaptureConfig struct {
	DurationSecs float64 `toml:"duration_secs"`
	Device       string  `toml:"device"`   // substring of the device name, empty to prompt
	KeepDir      string  `toml:"keep_dir"` // archive live takes as FLAC here when set
}

type ReportConfig struct {
	OutputDir string `toml:"output_dir"` // where saved reports go, empty for the working directory
	Details   bool   `toml:"details"`    // print the analysis detail tables
}

type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the stock settings
func Default() *Config {
	return &Config{
		Analysis: *processor.DefaultAnalysisConfig(),
		Capture: CaptureConfig{
			DurationSecs: audio.RecordDuration.Seconds(),
		},
	}
}

// DefaultPath returns ~/.config/voicehealth/config.toml (or the platform
// equivalent)
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "voicehealth", FileName)
}

// Load reads the config at path over the defaults. An empty path loads the
// default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	// Sanitize clears negative mains values, which here mean "disabled"
	mainsSetting := cfg.Analysis.MainsFrequency
	cfg.Analysis.Sanitize()
	cfg.Analysis.MainsFrequency = mainsSetting
	if cfg.Capture.DurationSecs <= 0 {
		cfg.Capture.DurationSecs = audio.RecordDuration.Seconds()
	}
	return cfg, nil
}

// CaptureDuration returns the live take length
func (c *Config) CaptureDuration() time.Duration {
	return time.Duration(c.Capture.DurationSecs * float64(time.Second))
}

// AnalysisSettings returns a copy of the analysis settings with the mains
// frequency resolved: 0 detects from the timezone, negative disables.
func (c *Config) AnalysisSettings() *processor.AnalysisConfig {
	a := c.Analysis
	a.MainsFrequency = mains.Resolve(a.MainsFrequency)
	return &a
}
