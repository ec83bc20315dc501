package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// captureGrace is how long Record waits past the requested duration before
// deciding the device has stalled.
const captureGrace = 3 * time.Second

type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
	Duration   time.Duration
}

// DefaultCaptureConfig returns a 5 second mono take at the analysis rate.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate: AnalysisRate,
		Channels:   Channels,
		Duration:   RecordDuration,
	}
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

// Context enumerates capture devices and opens them.
type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

// CaptureDevice delivers little-endian 16-bit PCM to its callback while started.
type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
}

// Record captures config.Duration of mono 16-bit audio from device (nil for
// the system default) and returns it as a float buffer. It blocks until the
// take is complete, ctx is cancelled, or the device stops delivering.
func Record(ctx context.Context, c Context, device *DeviceInfo, config CaptureConfig) (*Buffer, []int16, error) {
	if config.SampleRate == 0 {
		config.SampleRate = AnalysisRate
	}
	if config.Channels == 0 {
		config.Channels = Channels
	}
	if config.Duration <= 0 {
		config.Duration = RecordDuration
	}

	want := int(config.Duration.Seconds() * float64(config.SampleRate))

	capture, err := c.NewCapture(device, config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open capture device: %w", err)
	}
	defer capture.Close()

	var (
		mu       sync.Mutex
		pcm      = make([]int16, 0, want)
		done     = make(chan struct{})
		doneOnce sync.Once
	)
	capture.SetCallback(func(data []byte, _ uint32) {
		mu.Lock()
		defer mu.Unlock()
		for i := 0; i+1 < len(data) && len(pcm) < want; i += 2 {
			pcm = append(pcm, int16(binary.LittleEndian.Uint16(data[i:])))
		}
		if len(pcm) >= want {
			doneOnce.Do(func() { close(done) })
		}
	})
	defer capture.ClearCallback()

	if err := capture.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start capture: %w", err)
	}

	timer := time.NewTimer(config.Duration + captureGrace)
	defer timer.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		capture.Stop()
		return nil, nil, ctx.Err()
	case <-timer.C:
		capture.Stop()
		mu.Lock()
		got := len(pcm)
		mu.Unlock()
		return nil, nil, fmt.Errorf("%w: got %d of %d samples", ErrCaptureTimeout, got, want)
	}
	capture.Stop()

	mu.Lock()
	take := make([]int16, len(pcm))
	copy(take, pcm)
	mu.Unlock()

	return &Buffer{Samples: Int16ToFloat(take), SampleRate: int(config.SampleRate)}, take, nil
}
