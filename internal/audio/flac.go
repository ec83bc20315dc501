package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// flacBlockSize is the number of samples per FLAC frame
const flacBlockSize = 4096

// WriteFLAC encodes mono 16-bit PCM as a FLAC stream.
func WriteFLAC(w io.Writer, pcm []int16, sampleRate int) error {
	info := &meta.StreamInfo{
		BlockSizeMin:  flacBlockSize,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     Channels,
		BitsPerSample: BitsPerSample,
		NSamples:      uint64(len(pcm)),
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return fmt.Errorf("creating flac encoder: %w", err)
	}
	enc.EnablePredictionAnalysis(true)

	for i := 0; i < len(pcm); i += flacBlockSize {
		end := min(i+flacBlockSize, len(pcm))
		block := pcm[i:end]

		samples := make([]int32, len(block))
		for j, s := range block {
			samples[j] = int32(s)
		}

		f := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(len(block)),
				SampleRate:    uint32(sampleRate),
				Channels:      frame.ChannelsMono,
				BitsPerSample: BitsPerSample,
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  len(block),
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			return fmt.Errorf("writing flac frame at sample %d: %w", i, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising flac stream: %w", err)
	}
	return nil
}

// SaveTake writes a live take to path as FLAC.
func SaveTake(path string, pcm []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteFLAC(f, pcm, sampleRate); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	// the encoder closes writers that implement io.Closer
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
