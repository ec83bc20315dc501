package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner frames for indeterminate progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	accentColor = lipgloss.Color("#1E88E5")
	mutedColor  = lipgloss.Color("#888888")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(accentColor)
)

// View renders the UI
func (m Model) View() string {
	if m.state == stateDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHeader())
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		b.WriteString("Choose input method:\n")
		b.WriteString("1. Live voice recording\n")
		b.WriteString("2. Upload an audio file\n")
		b.WriteString("3. Exit\n")
		b.WriteString(renderPrompt("Enter choice (1, 2 or 3): ", m.input))

	case stateFilePrompt:
		b.WriteString(renderPrompt("Enter path to audio file (.wav, .mp3 or .flac): ", m.input))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Esc to go back"))

	case stateRecording:
		elapsed := time.Since(m.started)
		secs := int(m.recordFor.Round(time.Second) / time.Second)
		b.WriteString(fmt.Sprintf("🎙️ Speak now... (Recording for %d seconds)\n\n", secs))
		b.WriteString(renderCountdown(elapsed, m.recordFor, 40))

	case stateAnalyzing:
		spinner := cursorStyle.Render(spinnerFrames[m.spinnerIndex])
		b.WriteString(fmt.Sprintf("%s 🔍 Processing your voice... [%s]",
			spinner, formatElapsed(time.Since(m.started))))

	case stateSavePrompt:
		b.WriteString(renderPrompt("Do you want to save the report? (y/n): ", m.input))

	case stateFilenamePrompt:
		b.WriteString(renderPrompt("Enter the filename to save (e.g., report.txt): ", m.input))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Leave blank for the default name, Esc to skip"))
	}

	b.WriteString("\n")
	return b.String()
}

func renderHeader() string {
	return titleStyle.Render("voicehealth 🎤") + " " + mutedStyle.Render("Vocal confidence check")
}

func renderPrompt(label, input string) string {
	return promptStyle.Render(label) + input + cursorStyle.Render("▌")
}

// renderCountdown renders a bar that fills as the take progresses, with the
// seconds remaining
func renderCountdown(elapsed, total time.Duration, width int) string {
	progress := 1.0
	if total > 0 {
		progress = min(float64(elapsed)/float64(total), 1)
	}
	filled := int(progress * float64(width))
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(accentColor)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	bar := filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("━", empty))

	remaining := max(total-elapsed, 0)
	return fmt.Sprintf("%s %ds left", bar, int((remaining+time.Second-1)/time.Second))
}

// formatElapsed formats elapsed time as MM:SS or HH:MM:SS
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
