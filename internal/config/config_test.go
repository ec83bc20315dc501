package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/linuxmatters/voicehealth/internal/processor"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CaptureDuration() != 5*time.Second {
		t.Errorf("CaptureDuration() = %v, want 5s", cfg.CaptureDuration())
	}
	if cfg.Analysis != *processor.DefaultAnalysisConfig() {
		t.Errorf("Analysis = %+v, want stock settings", cfg.Analysis)
	}
	if cfg.Log.Enabled || cfg.Report.Details {
		t.Error("logging and details should be off by default")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file keeps defaults",
			text: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.FrameSize != 2048 {
					t.Errorf("FrameSize = %d, want 2048", cfg.Analysis.FrameSize)
				}
			},
		},
		{
			name: "partial analysis section",
			text: "[analysis]\nsilence_top_db = 40\npeaks_per_filler = 20\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.SilenceTopDB != 40 {
					t.Errorf("SilenceTopDB = %v, want 40", cfg.Analysis.SilenceTopDB)
				}
				if cfg.Analysis.PeaksPerFiller != 20 {
					t.Errorf("PeaksPerFiller = %d, want 20", cfg.Analysis.PeaksPerFiller)
				}
				if cfg.Analysis.HopSize != 512 {
					t.Errorf("HopSize = %d, want untouched 512", cfg.Analysis.HopSize)
				}
			},
		},
		{
			name: "out of range values are sanitised",
			text: "[analysis]\nframe_size = 0\nmedian_window = 4\n[capture]\nduration_secs = -1\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.FrameSize != 2048 {
					t.Errorf("FrameSize = %d, want 2048", cfg.Analysis.FrameSize)
				}
				if cfg.Analysis.MedianWindow != 5 {
					t.Errorf("MedianWindow = %d, want 5", cfg.Analysis.MedianWindow)
				}
				if cfg.CaptureDuration() != 5*time.Second {
					t.Errorf("CaptureDuration() = %v, want 5s", cfg.CaptureDuration())
				}
			},
		},
		{
			name: "negative mains survives parsing",
			text: "[analysis]\nmains_frequency = -1\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.MainsFrequency != -1 {
					t.Errorf("MainsFrequency = %d, want -1", cfg.Analysis.MainsFrequency)
				}
			},
		},
		{
			name: "all sections",
			text: `
[capture]
duration_secs = 10
device = "USB"
keep_dir = "/tmp/takes"

[report]
output_dir = "reports"
details = true

[log]
enabled = true
path = "/tmp/logs"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.CaptureDuration() != 10*time.Second {
					t.Errorf("CaptureDuration() = %v, want 10s", cfg.CaptureDuration())
				}
				if cfg.Capture.Device != "USB" || cfg.Capture.KeepDir != "/tmp/takes" {
					t.Errorf("Capture = %+v", cfg.Capture)
				}
				if cfg.Report.OutputDir != "reports" || !cfg.Report.Details {
					t.Errorf("Report = %+v", cfg.Report)
				}
				if !cfg.Log.Enabled || cfg.Log.Path != "/tmp/logs" {
					t.Errorf("Log = %+v", cfg.Log)
				}
			},
		},
		{
			name:    "unknown key",
			text:    "[analysis]\nframe_sise = 1024\n",
			wantErr: "analysis.frame_sise",
		},
		{
			name:    "bad syntax",
			text:    "[analysis\n",
			wantErr: "",
		},
		{
			name:    "wrong type",
			text:    "[capture]\nduration_secs = \"five\"\n",
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.text)
			if tt.check == nil {
				if err == nil {
					t.Fatal("Parse() succeeded, want error")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(dir, "vh.toml")
		if err := os.WriteFile(path, []byte("[report]\ndetails = true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !cfg.Report.Details {
			t.Error("Report.Details = false, want true")
		}
	})

	t.Run("explicit missing path is an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
			t.Error("Load() succeeded, want error")
		}
	})

	t.Run("missing default file falls back", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "empty"))
		t.Setenv("HOME", filepath.Join(dir, "home"))
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Analysis.FrameSize != 2048 {
			t.Errorf("FrameSize = %d, want 2048", cfg.Analysis.FrameSize)
		}
	})

	t.Run("parse errors name the file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("nonsense = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), path) {
			t.Errorf("Load() error = %v, want one naming %s", err, path)
		}
	})
}

func TestAnalysisSettings(t *testing.T) {
	tests := []struct {
		setting int
		want    int
	}{
		{-1, 0},
		{50, 50},
		{60, 60},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Analysis.MainsFrequency = tt.setting
		got := cfg.AnalysisSettings()
		if got.MainsFrequency != tt.want {
			t.Errorf("setting %d: MainsFrequency = %d, want %d", tt.setting, got.MainsFrequency, tt.want)
		}
		if cfg.Analysis.MainsFrequency != tt.setting {
			t.Errorf("setting %d: AnalysisSettings modified the config", tt.setting)
		}
	}
}
