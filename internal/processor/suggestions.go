package processor

// ConfidentMessage stands in for the suggestion list when no rule fires
const ConfidentMessage = "Your voice sounds confident and fluent!"

// suggestionRule pairs a condition on the raw features with its advice
type suggestionRule struct {
	name    string
	applies func(f FeatureSummary) bool
	message string
}

// suggestionRules are evaluated in order and independently
var suggestionRules = []suggestionRule{
	{
		name:    "monotone",
		applies: func(f FeatureSummary) bool { return f.PitchStd < 20 },
		message: "Increase pitch variation to sound more engaging.",
	},
	{
		name:    "quiet",
		applies: func(f FeatureSummary) bool { return f.EnergyMean < 0.02 },
		message: "Speak with more volume and energy.",
	},
	{
		name:    "fillers",
		applies: func(f FeatureSummary) bool { return f.FillerCount >= 3 },
		message: "Practice reducing filler words like 'um' and 'uh'.",
	},
	{
		name:    "pauses",
		applies: func(f FeatureSummary) bool { return f.PauseCount >= 3 },
		message: "Minimize long pauses for smoother delivery.",
	},
}

// GenerateSuggestions returns the coaching advice for a feature summary, in
// rule order. An empty result means the delivery needs no advice.
func GenerateSuggestions(f FeatureSummary) []string {
	var out []string
	for _, r := range suggestionRules {
		if r.applies(f) {
			out = append(out, r.message)
		}
	}
	return out
}
