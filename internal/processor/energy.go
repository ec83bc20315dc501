package processor

import "math"

// EnergyAnalysis is the frame-wise RMS loudness of a buffer
type EnergyAnalysis struct {
	Series []float64
	Mean   float64
	Std    float64
}

// AnalyzeEnergy computes RMS over centred frames covering the whole buffer.
// Every frame counts, including silent ones.
func AnalyzeEnergy(samples []float64, cfg *AnalysisConfig) EnergyAnalysis {
	series := centredFramePower(samples, cfg.FrameSize, cfg.HopSize)
	for i, p := range series {
		series[i] = math.Sqrt(p)
	}
	mean, std := meanStd(series)
	return EnergyAnalysis{Series: series, Mean: mean, Std: std}
}
