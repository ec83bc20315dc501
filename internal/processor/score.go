package processor

import "math"

// ConfidenceLevel is the categorical reading of a confidence score
type ConfidenceLevel string

const (
	LevelConfident        ConfidenceLevel = "Confident"
	LevelModerate         ConfidenceLevel = "Moderate"
	LevelNeedsImprovement ConfidenceLevel = "Needs Improvement"
)

// levelRules maps scores to levels; the first rule whose floor the score
// reaches wins.
var levelRules = []struct {
	floor float64
	level ConfidenceLevel
}{
	{75, LevelConfident},
	{50, LevelModerate},
	{math.Inf(-1), LevelNeedsImprovement},
}

// LevelForScore maps a score to its confidence level
func LevelForScore(score float64) ConfidenceLevel {
	for _, r := range levelRules {
		if score >= r.floor {
			return r.level
		}
	}
	return LevelNeedsImprovement
}

// Score weights. Fillers weigh most, pitch monotony least.
const (
	maxScore      = 100.0
	pitchWeight   = 20.0
	energyWeight  = 25.0
	fillerWeight  = 30.0
	pauseWeight   = 25.0
	pitchStdScale = 50.0 // Hz of std that counts as full variability
	energyScale   = 50.0 // mean RMS of 0.02 counts as full energy
	fillerScale   = 10.0
	pauseScale    = 5.0
)

// ScoreTerm is one feature's contribution to the score
type ScoreTerm struct {
	Name       string
	Measured   float64
	Normalised float64 // clipped to [0, 1]
	Weight     float64
	Penalty    float64 // points deducted from 100
}

// Breakdown lists the four score terms in report order
type Breakdown struct {
	Pitch  ScoreTerm
	Energy ScoreTerm
	Filler ScoreTerm
	Pause  ScoreTerm
}

// Terms returns the terms as a slice for tabulation
func (b Breakdown) Terms() []ScoreTerm {
	return []ScoreTerm{b.Pitch, b.Energy, b.Filler, b.Pause}
}

// ScoreConfidence maps a feature summary to a score in [0, 100] and the
// per-term breakdown behind it. Low pitch variability, high energy, fillers
// and pauses each deduct points.
func ScoreConfidence(f FeatureSummary) (float64, Breakdown) {
	pv := clamp(f.PitchStd/pitchStdScale, 0, 1)
	el := clamp(f.EnergyMean*energyScale, 0, 1)
	fl := clamp(float64(f.FillerCount)/fillerScale, 0, 1)
	pl := clamp(float64(f.PauseCount)/pauseScale, 0, 1)

	b := Breakdown{
		Pitch:  ScoreTerm{Name: "Pitch variation", Measured: f.PitchStd, Normalised: pv, Weight: pitchWeight, Penalty: pv * pitchWeight},
		Energy: ScoreTerm{Name: "Energy", Measured: f.EnergyMean, Normalised: el, Weight: energyWeight, Penalty: (1 - el) * energyWeight},
		Filler: ScoreTerm{Name: "Fillers", Measured: float64(f.FillerCount), Normalised: fl, Weight: fillerWeight, Penalty: fl * fillerWeight},
		Pause:  ScoreTerm{Name: "Pauses", Measured: float64(f.PauseCount), Normalised: pl, Weight: pauseWeight, Penalty: pl * pauseWeight},
	}

	score := maxScore - (b.Pitch.Penalty + b.Energy.Penalty + b.Filler.Penalty + b.Pause.Penalty)
	return math.Max(score, 0), b
}
