package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenAudioFile(t *testing.T) {
	t.Run("wav at analysis rate", func(t *testing.T) {
		pcm := sineInt16(220, -6, 1.0, AnalysisRate)
		path := writeTestWAV(t, "tone.wav", pcm, AnalysisRate)

		buf, meta, err := OpenAudioFile(path)
		if err != nil {
			t.Fatalf("OpenAudioFile() error = %v", err)
		}
		if buf.SampleRate != AnalysisRate {
			t.Errorf("SampleRate = %d, want %d", buf.SampleRate, AnalysisRate)
		}
		if len(buf.Samples) != len(pcm) {
			t.Fatalf("len(Samples) = %d, want %d", len(buf.Samples), len(pcm))
		}
		for i := 0; i < len(pcm); i += 997 {
			want := float64(pcm[i]) / 32768.0
			if math.Abs(buf.Samples[i]-want) > 1e-4 {
				t.Fatalf("Samples[%d] = %f, want %f", i, buf.Samples[i], want)
			}
		}
		if meta.Format != "wav" || meta.Channels != 1 || meta.SampleRate != AnalysisRate {
			t.Errorf("metadata = %+v", meta)
		}
		if math.Abs(meta.Duration-1.0) > 0.01 {
			t.Errorf("Duration = %f, want 1.0", meta.Duration)
		}
	})

	t.Run("wav is resampled to analysis rate", func(t *testing.T) {
		pcm := sineInt16(220, -6, 1.0, 44100)
		path := writeTestWAV(t, "tone44.wav", pcm, 44100)

		buf, meta, err := OpenAudioFile(path)
		if err != nil {
			t.Fatalf("OpenAudioFile() error = %v", err)
		}
		if meta.SampleRate != 44100 {
			t.Errorf("metadata SampleRate = %d, want 44100", meta.SampleRate)
		}
		if buf.SampleRate != AnalysisRate {
			t.Errorf("SampleRate = %d, want %d", buf.SampleRate, AnalysisRate)
		}
		if got := buf.Duration(); math.Abs(got-1.0) > 0.02 {
			t.Errorf("Duration() = %f, want ~1.0", got)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, _, err := OpenAudioFile(path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := OpenAudioFile(filepath.Join(t.TempDir(), "absent.wav"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("corrupt wav", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.wav")
		if err := os.WriteFile(path, []byte("not a riff file at all"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := OpenAudioFile(path); err == nil {
			t.Error("expected decode error for corrupt wav")
		}
	})
}

func TestConversions(t *testing.T) {
	pcm := []int16{0, 16384, -16384, 32767, -32768}
	f := Int16ToFloat(pcm)
	want := []float64{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("Int16ToFloat[%d] = %f, want %f", i, f[i], want[i])
		}
	}

	back := FloatToInt16([]float64{0, 0.5, 2.0, -2.0})
	wantBack := []int16{0, 16384, 32767, -32768}
	for i := range wantBack {
		if back[i] != wantBack[i] {
			t.Errorf("FloatToInt16[%d] = %d, want %d", i, back[i], wantBack[i])
		}
	}
}

func TestIsBluetooth(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"AirPods Pro", true},
		{"Jabra Evolve2 65", true},
		{"Headset (Bluetooth)", true},
		{"Built-in Microphone", false},
		{"Shure MV7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBluetooth(tt.name); got != tt.want {
				t.Errorf("IsBluetooth(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
