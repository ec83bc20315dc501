package processor

import "math"

// MeasureHum estimates how much of the signal's power sits at the mains
// frequency, in dB relative to the total spectral power. Frames with no
// energy are skipped. Returns -Inf when nothing could be measured.
func MeasureHum(samples []float64, sampleRate, mainsHz int, cfg *AnalysisConfig) float64 {
	if mainsHz <= 0 || sampleRate <= 0 {
		return math.Inf(-1)
	}
	binHz := float64(sampleRate) / float64(cfg.FrameSize)
	centre := float64(mainsHz) / binHz
	lo := max(1, int(math.Floor(centre)))
	hi := int(math.Ceil(centre))

	var humPower, totalPower float64
	forEachSpectrum(samples, cfg.FrameSize, cfg.HopSize, func(_ int, mags []float64) {
		if hi >= len(mags) {
			return
		}
		frameTotal := 0.0
		for _, m := range mags[1:] {
			frameTotal += m * m
		}
		if frameTotal == 0 {
			return
		}
		for k := lo; k <= hi; k++ {
			humPower += mags[k] * mags[k]
		}
		totalPower += frameTotal
	})

	if totalPower == 0 {
		return math.Inf(-1)
	}
	return powerDB(humPower/totalPower, cfg.PowerFloor)
}
