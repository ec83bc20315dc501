package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/linuxmatters/voicehealth/internal/audio"
	"github.com/linuxmatters/voicehealth/internal/config"
	"github.com/linuxmatters/voicehealth/internal/logging"
	"github.com/linuxmatters/voicehealth/internal/processor"
	"github.com/linuxmatters/voicehealth/internal/ui"
)

// session runs captures, analyses and saves for both the interactive menu
// and one-shot mode. It implements ui.Engine.
type session struct {
	analysis     *processor.AnalysisConfig
	captureFor   time.Duration
	deviceName   string
	promptDevice bool // use the raw-terminal picker; off while the TUI owns the terminal
	keepDir      string
	outputDir    string
	details      bool

	newContext func() (audio.Context, error)
	now        func() time.Time
	warn       func(string)

	mu         sync.Mutex
	lastSource string
	lastAt     time.Time
}

var _ ui.Engine = (*session)(nil)

func newSession(cfg *config.Config) *session {
	return &session{
		analysis:   cfg.AnalysisSettings(),
		captureFor: cfg.CaptureDuration(),
		deviceName: cfg.Capture.Device,
		keepDir:    cfg.Capture.KeepDir,
		outputDir:  cfg.Report.OutputDir,
		details:    cfg.Report.Details,
		newContext: audio.NewContext,
		now:        time.Now,
		warn:       func(string) {},
	}
}

// Record captures one live take from the configured device
func (s *session) Record(ctx context.Context) (*ui.Take, error) {
	actx, err := s.newContext()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise audio: %w", err)
	}
	defer actx.Close()

	device, err := s.chooseDevice(actx)
	if err != nil {
		return nil, err
	}
	deviceName := ""
	if device != nil {
		deviceName = device.Name
		if audio.IsBluetooth(device.Name) {
			msg := fmt.Sprintf("%s looks like a Bluetooth headset; its narrowband mic skews pitch and energy", device.Name)
			logging.Warnf("%s", msg)
			s.warn(msg)
		}
	}

	start := time.Now()
	buf, pcm, err := audio.Record(ctx, actx, device, audio.CaptureConfig{
		SampleRate: audio.AnalysisRate,
		Channels:   audio.Channels,
		Duration:   s.captureFor,
	})
	if err != nil {
		logging.Errorf("capture failed: %v", err)
		return nil, err
	}
	logging.Capture(deviceName, len(pcm), buf.SampleRate, time.Since(start))

	if s.keepDir != "" {
		if path, err := s.keepTake(pcm, buf.SampleRate); err != nil {
			logging.Errorf("archiving take: %v", err)
			s.warn(fmt.Sprintf("could not archive take: %v", err))
		} else {
			logging.Info("take archived to " + path)
		}
	}

	return &ui.Take{
		Buffer: buf,
		Metadata: &audio.Metadata{
			Duration:   buf.Duration(),
			SampleRate: buf.SampleRate,
			Channels:   audio.Channels,
			Format:     "live",
		},
	}, nil
}

// chooseDevice resolves the configured device name, falls back to the
// interactive picker when allowed, and otherwise uses the system default.
func (s *session) chooseDevice(actx audio.Context) (*audio.DeviceInfo, error) {
	if s.deviceName != "" {
		devices, err := actx.Devices()
		if err != nil {
			return nil, fmt.Errorf("enumerating devices: %w", err)
		}
		return findDevice(devices, s.deviceName)
	}
	if s.promptDevice {
		return audio.SelectDevice(actx)
	}
	return nil, nil
}

// findDevice returns the first device whose name contains name, ignoring case
func findDevice(devices []audio.DeviceInfo, name string) (*audio.DeviceInfo, error) {
	want := strings.ToLower(name)
	for i := range devices {
		if strings.Contains(strings.ToLower(devices[i].Name), want) {
			return &devices[i], nil
		}
	}
	if len(devices) == 0 {
		return nil, audio.ErrNoDevices
	}
	return nil, fmt.Errorf("no capture device matches %q", name)
}

func (s *session) keepTake(pcm []int16, sampleRate int) (string, error) {
	if err := os.MkdirAll(s.keepDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.keepDir, "live-"+s.now().Format("20060102-150405")+".flac")
	return path, audio.SaveTake(path, pcm, sampleRate)
}

// Load decodes an audio file
func (s *session) Load(path string) (*ui.Take, error) {
	buf, meta, err := audio.OpenAudioFile(path)
	if err != nil {
		logging.Errorf("loading %s: %v", path, err)
		return nil, err
	}
	return &ui.Take{Source: path, Buffer: buf, Metadata: meta}, nil
}

// Analyze scores a take and renders its report
func (s *session) Analyze(take *ui.Take) (*ui.Report, error) {
	if take == nil {
		return nil, processor.ErrNoBuffer
	}
	start := time.Now()
	result, err := processor.AnalyzeVoice(take.Buffer, s.analysis)
	if err != nil {
		logging.Errorf("analysis failed: %v", err)
		return nil, err
	}
	name := take.Source
	if name == "" {
		name = logging.LiveSource
	}
	logging.AnalysisMetrics(name, result, time.Since(start))

	at := s.now()
	s.mu.Lock()
	s.lastSource = take.Source
	s.lastAt = at
	s.mu.Unlock()

	report := logging.FormatReport(logging.ReportData{
		Source:     take.Source,
		AnalysedAt: at,
		Metadata:   take.Metadata,
		Result:     result,
	})
	if s.details {
		var b strings.Builder
		b.WriteString(report)
		b.WriteString("\n")
		logging.DisplayAnalysisDetails(&b, take.Source, take.Metadata, result)
		report = b.String()
	}
	return &ui.Report{Text: report, Level: string(result.Level), Score: result.Score}, nil
}

// Save writes report to name, or to the default report path for the last
// analysed take when name is empty
func (s *session) Save(name, report string) (string, error) {
	path := name
	if path == "" {
		s.mu.Lock()
		source, at := s.lastSource, s.lastAt
		s.mu.Unlock()
		if s.outputDir != "" {
			if err := os.MkdirAll(s.outputDir, 0755); err != nil {
				return "", fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		path = logging.ReportPath(source, s.outputDir, at)
	}
	if err := logging.SaveReport(path, report); err != nil {
		logging.Errorf("%v", err)
		return "", err
	}
	logging.Info("report saved to " + path)
	return path, nil
}
