package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is beep's interpolation quality (1 = linear, up to 64).
const resampleQuality = 4

// streamChunk is the number of frames pulled from a decoder per Stream call
const streamChunk = 4096

// OpenAudioFile decodes an audio file into a mono buffer at AnalysisRate.
// Multi-channel audio is downmixed by averaging; other rates are resampled.
func OpenAudioFile(filename string) (*Buffer, *Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	var (
		streamer beep.StreamSeekCloser
		beepFmt  beep.Format
	)
	switch format {
	case "wav":
		streamer, beepFmt, err = wav.Decode(f)
	case "mp3":
		// mp3.Decode takes ownership of the ReadCloser
		streamer, beepFmt, err = mp3.Decode(f)
	case "flac":
		streamer, beepFmt, err = flac.Decode(f)
	default:
		f.Close()
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(filename), err)
	}
	defer streamer.Close()
	if format != "mp3" {
		defer f.Close()
	}

	sourceRate := int(beepFmt.SampleRate)
	if sourceRate <= 0 {
		return nil, nil, fmt.Errorf("invalid sample rate %d in %s", sourceRate, filepath.Base(filename))
	}
	metadata := &Metadata{
		SampleRate: sourceRate,
		Channels:   beepFmt.NumChannels,
		Format:     format,
	}
	if streamer.Len() > 0 {
		metadata.Duration = float64(streamer.Len()) / float64(sourceRate)
	}

	var src beep.Streamer = streamer
	if sourceRate != AnalysisRate {
		src = beep.Resample(resampleQuality, beepFmt.SampleRate, beep.SampleRate(AnalysisRate), streamer)
	}

	samples, err := drainMono(src, beepFmt.NumChannels)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read samples from %s: %w", filepath.Base(filename), err)
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(filename), ErrEmptyAudio)
	}

	return &Buffer{Samples: samples, SampleRate: AnalysisRate}, metadata, nil
}

// drainMono reads a streamer to the end, averaging stereo frames to mono.
// beep always yields two channels; mono sources carry the same value in both.
func drainMono(s beep.Streamer, channels int) ([]float64, error) {
	var out []float64
	chunk := make([][2]float64, streamChunk)
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			if channels == 1 {
				out = append(out, frame[0])
			} else {
				out = append(out, (frame[0]+frame[1])/2)
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
