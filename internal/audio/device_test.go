package audio

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestPickDevice(t *testing.T) {
	devices := []DeviceInfo{
		{ID: "0", Name: "Built-in Microphone"},
		{ID: "1", Name: "AirPods Pro"},
		{ID: "2", Name: "USB Audio"},
	}

	tests := []struct {
		name  string
		input []string // one element per Read
		want  int
	}{
		{"enter selects first", []string{"\r"}, 0},
		{"arrow down twice", []string{"\x1b[B", "\x1b[B", "\r"}, 2},
		{"vim keys", []string{"j", "j", "k", "\n"}, 1},
		{"clamped at bottom", []string{"j", "j", "j", "j", "\r"}, 2},
		{"clamped at top", []string{"\x1b[A", "\r"}, 0},
		{"escape cancels", []string{"\x1b"}, -1},
		{"ctrl-c cancels", []string{"\x03"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := pickDevice(&chunkReader{chunks: tt.input}, &out, devices)
			if err != nil {
				t.Fatalf("pickDevice() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("pickDevice() = %d, want %d", got, tt.want)
			}
			if !strings.Contains(out.String(), "lower quality mic") {
				t.Error("expected Bluetooth warning in picker output")
			}
		})
	}

	t.Run("input closed", func(t *testing.T) {
		var out bytes.Buffer
		if _, err := pickDevice(&chunkReader{}, &out, devices); err == nil {
			t.Error("expected error when input is exhausted")
		}
	})
}

// chunkReader returns one chunk per Read, like a raw terminal does per key
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}
