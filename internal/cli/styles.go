// Package cli holds the terminal styling shared by the command line
// surfaces: version and error output, help, and level colouring.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E88E5") // voicehealth blue
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	goodColor    = lipgloss.Color("#43A047")
	fairColor    = lipgloss.Color("#FFA500")
	poorColor    = lipgloss.Color("#E53935")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(poorColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(fairColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// LevelStyle colours a confidence level label. Unknown labels render muted.
func LevelStyle(level string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch level {
	case "Confident":
		return style.Foreground(goodColor)
	case "Moderate":
		return style.Foreground(fairColor)
	case "Needs Improvement":
		return style.Foreground(poorColor)
	}
	return style.Foreground(mutedColor)
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("voicehealth 🎤"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a non-fatal problem to stderr
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarningStyle.Render("Warning:"), message)
}
