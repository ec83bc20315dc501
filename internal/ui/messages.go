package ui

import "time"

// takeMsg carries a recorded or loaded take back to the model
type takeMsg struct {
	take *Take
	err  error
}

// reportMsg carries the rendered report for a take
type reportMsg struct {
	report *Report
	err    error
}

// savedMsg reports the outcome of saving a report
type savedMsg struct {
	path string
	err  error
}

// tickMsg drives the spinner and the recording countdown
type tickMsg time.Time
