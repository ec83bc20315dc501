// Package audio provides the sample sources for voice analysis: decoded
// audio files, live microphone capture and FLAC archiving of live takes.
package audio

import (
	"errors"
	"strings"
	"time"
)

const (
	// AnalysisRate is the sample rate every source is delivered at.
	AnalysisRate = 22050
	// RecordDuration is the default length of a live take.
	RecordDuration = 5 * time.Second
	Channels       = 1
	BitsPerSample  = 16
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoDevices         = errors.New("no capture devices found")
	ErrCaptureTimeout    = errors.New("capture device stopped delivering audio")
	ErrEmptyAudio        = errors.New("audio contains no samples")
)

// Buffer is a mono sample buffer with its sample rate.
// Samples are nominally in [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Metadata describes the source a Buffer was decoded from
type Metadata struct {
	Duration   float64 // seconds, at the source rate
	SampleRate int     // source sample rate before resampling
	Channels   int
	Format     string // "wav", "mp3", "flac" or "live"
}

// Int16ToFloat converts 16-bit PCM to floating point in [-1, 1).
func Int16ToFloat(pcm []int16) []float64 {
	out := make([]float64, len(pcm))
	for i, s := range pcm {
		out[i] = float64(s) / 32768.0
	}
	return out
}

// FloatToInt16 converts floating point samples to 16-bit PCM, clamping to
// the representable range.
func FloatToInt16(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		v := s * 32768.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

var btKeywords = []string{
	"airpods", "beats", "bose", "wh-1000", "wf-1000",
	"jabra", "galaxy buds", "pixel buds", "powerbeats",
	"jbl ", "sennheiser momentum", "plantronics",
	"bluetooth", " bt ", " bt)", " bt]",
}

// IsBluetooth guesses from the device name whether a capture device is a
// Bluetooth headset. Their narrowband mics skew pitch and energy readings.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
