package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(fairColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(fairColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(goodColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// ungrouped is the section title for flags without a kong group
const ungrouped = "Flags"

var examples = []helpEntry{
	{"talk.wav", "Analyse a recording and print the confidence report"},
	{"--record --keep takes/", "Record a live take, analyse it and archive it as FLAC"},
	{"--details --output reports/ *.flac", "Analyse several files, saving a report for each"},
}

// helpEntry is one line of a help section: a styled term and its description
type helpEntry struct {
	term string
	help string
}

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// Flags are listed under their kong group title.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder
		name := ctx.Model.Name

		sb.WriteString(helpTitleStyle.Render("voicehealth 🎤"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render("Vocal confidence analyser for recorded or live speech"))
		sb.WriteString("\n")

		writeHelpSection(&sb, "Usage", helpArgStyle, []helpEntry{
			{fmt.Sprintf("%s [flags] [<files> ...]", name), ""},
		})
		sb.WriteString("  ")
		sb.WriteString(helpDefaultStyle.Render("With no files and no --record, an interactive menu starts."))
		sb.WriteString("\n")

		writeHelpSection(&sb, "Arguments", helpArgStyle, positionals(ctx))

		titles, groups := flagGroups(ctx)
		for _, title := range titles {
			writeHelpSection(&sb, title, helpFlagStyle, groups[title])
		}

		ex := make([]helpEntry, len(examples))
		for i, e := range examples {
			ex[i] = helpEntry{term: name + " " + e.term, help: "\n    " + e.help}
		}
		writeHelpSection(&sb, "Examples", helpArgStyle, ex)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

// writeHelpSection writes a titled list; empty lists are skipped
func writeHelpSection(sb *strings.Builder, title string, termStyle lipgloss.Style, entries []helpEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title + ":"))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(termStyle.Render(e.term))
		if e.help != "" {
			if !strings.HasPrefix(e.help, "\n") {
				sb.WriteString("  ")
			}
			sb.WriteString(e.help)
		}
		sb.WriteString("\n")
	}
}

func positionals(ctx *kong.Context) []helpEntry {
	var entries []helpEntry
	for _, arg := range ctx.Model.Node.Positional {
		entries = append(entries, helpEntry{term: arg.Summary(), help: arg.Help})
	}
	return entries
}

// flagGroups buckets flags by group title, keeping first-seen order.
// --help always leads the ungrouped section.
func flagGroups(ctx *kong.Context) ([]string, map[string][]helpEntry) {
	titles := []string{ungrouped}
	groups := map[string][]helpEntry{
		ungrouped: {{term: "-h, --help", help: "Show context-sensitive help."}},
	}

	for _, f := range ctx.Model.Node.Flags {
		if f.Name == "help" {
			continue
		}
		title := ungrouped
		if f.Group != nil && f.Group.Title != "" {
			title = f.Group.Title
		}
		if _, ok := groups[title]; !ok {
			titles = append(titles, title)
		}
		groups[title] = append(groups[title], flagEntry(f))
	}
	return titles, groups
}

func flagEntry(f *kong.Flag) helpEntry {
	term := "--" + f.Name
	if f.Short != 0 {
		term = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}
	if !f.IsBool() && f.PlaceHolder != "" {
		term += "=" + strings.ToUpper(f.PlaceHolder)
	}

	help := f.Help
	if f.Default != "" {
		help += " " + helpDefaultStyle.Render("(default: "+f.Default+")")
	}
	return helpEntry{term: term, help: help}
}
