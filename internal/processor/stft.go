package processor

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

// forEachSpectrum walks Hann-windowed frames of frameSize samples, hop apart,
// and hands each frame's magnitude spectrum (frameSize/2+1 bins) to fn.
// Frames are not centred: a buffer shorter than frameSize yields no frames.
// The mags slice is reused between calls.
func forEachSpectrum(samples []float64, frameSize, hop int, fn func(frame int, mags []float64)) int {
	if len(samples) < frameSize {
		return 0
	}
	count := 1 + (len(samples)-frameSize)/hop

	fft := fourier.NewFFT(frameSize)
	win := hannWindow(frameSize)
	buf := make([]float64, frameSize)
	coeffs := make([]complex128, frameSize/2+1)
	mags := make([]float64, frameSize/2+1)

	for i := 0; i < count; i++ {
		frame := samples[i*hop : i*hop+frameSize]
		for j, s := range frame {
			buf[j] = s * win[j]
		}
		coeffs = fft.Coefficients(coeffs, buf)
		for k, c := range coeffs {
			mags[k] = cmplx.Abs(c)
		}
		fn(i, mags)
	}
	return count
}

// hannWindow returns the Hann window coefficients for n samples
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return window.Hann(w)
}

// centredFramePower returns the mean square of each frame when the buffer is
// zero padded by half a frame on both sides, giving 1+len/hop frames.
func centredFramePower(samples []float64, frameSize, hop int) []float64 {
	count := 1 + len(samples)/hop
	half := frameSize / 2
	power := make([]float64, count)
	for i := range power {
		start := i*hop - half
		end := start + frameSize
		lo := max(start, 0)
		hi := min(end, len(samples))
		sum := 0.0
		for _, s := range samples[lo:max(lo, hi)] {
			sum += s * s
		}
		power[i] = sum / float64(frameSize)
	}
	return power
}

// meanStd returns the population mean and standard deviation, or zeros for
// an empty series.
func meanStd(series []float64) (float64, float64) {
	if len(series) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(series, nil)
}
