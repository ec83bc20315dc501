package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// sineInt16 generates a 16-bit sine at the given level in dBFS
func sineInt16(freq float64, levelDB float64, secs float64, rate int) []int16 {
	n := int(secs * float64(rate))
	amp := math.Pow(10, levelDB/20) * math.MaxInt16
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

// writeTestWAV writes samples as a mono 16-bit WAV into t.TempDir
func writeTestWAV(t *testing.T, name string, samples []int16, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	dataSize := len(samples) * 2
	header := []any{
		[]byte("RIFF"), uint32(36 + dataSize), []byte("WAVE"),
		[]byte("fmt "), uint32(16), uint16(1), uint16(1),
		uint32(sampleRate), uint32(sampleRate * 2), uint16(2), uint16(16),
		[]byte("data"), uint32(dataSize),
	}
	for _, field := range header {
		if err := binary.Write(f, binary.LittleEndian, field); err != nil {
			t.Fatalf("failed to write WAV header: %v", err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, samples); err != nil {
		t.Fatalf("failed to write WAV data: %v", err)
	}
	return path
}
