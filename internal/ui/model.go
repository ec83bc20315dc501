// Package ui provides the Bubbletea interactive menu for voicehealth
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/voicehealth/internal/audio"
	"github.com/linuxmatters/voicehealth/internal/cli"
)

// Take is one piece of audio ready for analysis
type Take struct {
	Source   string // file path, empty for a live take
	Buffer   *audio.Buffer
	Metadata *audio.Metadata
}

// Report is a rendered analysis. Text is what gets saved; Level and Score
// drive the coloured headline.
type Report struct {
	Text  string
	Level string
	Score float64
}

// Headline renders the level and score in the level's colour
func (r *Report) Headline() string {
	return cli.LevelStyle(r.Level).Render(fmt.Sprintf("%s (%.1f%%)", r.Level, r.Score))
}

// Engine does the work behind the menu. Every method blocks and is run off
// the UI goroutine.
type Engine interface {
	Record(ctx context.Context) (*Take, error)
	Load(path string) (*Take, error)
	Analyze(take *Take) (*Report, error)
	// Save writes a report and returns the path used. An empty name lets
	// the engine choose one.
	Save(name, report string) (string, error)
}

type state int

const (
	stateMenu state = iota
	stateFilePrompt
	stateRecording
	stateAnalyzing
	stateSavePrompt
	stateFilenamePrompt
	stateDone
)

// Model is the Bubbletea model for the interactive menu
type Model struct {
	engine    Engine
	recordFor time.Duration

	state   state
	input   string
	report  string
	note    string // most recent message printed above the prompt
	started time.Time
	cancel  context.CancelFunc

	spinnerIndex int

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates the menu model. recordFor is only used to draw the
// recording countdown; the engine decides how long a take really is.
func NewModel(engine Engine, recordFor time.Duration) Model {
	if recordFor <= 0 {
		recordFor = audio.RecordDuration
	}
	return Model{
		engine:    engine,
		recordFor: recordFor,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if m.busy() {
			m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
			return m, tickCmd()
		}

	case takeMsg:
		m.stopRecording()
		if msg.err != nil {
			return m.backToMenu(m.errorNote(msg.err))
		}
		m.state = stateAnalyzing
		m.started = time.Now()
		return m, analyzeCmd(m.engine, msg.take)

	case reportMsg:
		if msg.err != nil {
			return m.backToMenu(m.errorNote(msg.err))
		}
		m.report = msg.report.Text
		m.state = stateSavePrompt
		m.input = ""
		return m, tea.Println(msg.report.Text + "\n" + msg.report.Headline())

	case savedMsg:
		if msg.err != nil {
			return m.finishAnalysis(cli.ErrorStyle.Render(fmt.Sprintf("❌ Failed to save report: %v", msg.err)))
		}
		return m.finishAnalysis(fmt.Sprintf("✅ Report saved as %s", msg.path))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.stopRecording()
		m.state = stateDone
		return m, tea.Quit
	case tea.KeyEsc:
		switch m.state {
		case stateFilePrompt:
			return m.backToMenu("")
		case stateFilenamePrompt:
			return m.finishAnalysis("Report not saved.")
		}
		return m, nil
	}

	if !m.prompting() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		return m.submit(line)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// submit acts on a completed input line
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch line {
		case "1":
			ctx, cancel := context.WithCancel(context.Background())
			m.cancel = cancel
			m.state = stateRecording
			m.started = time.Now()
			return m, tea.Batch(recordCmd(ctx, m.engine), tickCmd())
		case "2":
			m.state = stateFilePrompt
			return m, nil
		case "3":
			m.state = stateDone
			m.note = "👋 Exiting... Stay vocal!"
			return m, tea.Sequence(tea.Println(m.note), tea.Quit)
		default:
			return m.say(cli.ErrorStyle.Render("❌ Invalid choice."))
		}

	case stateFilePrompt:
		if line == "" {
			return m.backToMenu("")
		}
		m.state = stateAnalyzing
		m.started = time.Now()
		return m, tea.Batch(loadCmd(m.engine, line), tickCmd())

	case stateSavePrompt:
		if strings.EqualFold(line, "y") {
			m.state = stateFilenamePrompt
			return m, nil
		}
		return m.finishAnalysis("Report not saved.")

	case stateFilenamePrompt:
		return m, saveCmd(m.engine, line, m.report)
	}
	return m, nil
}

// say prints a line above the prompt and remembers it
func (m Model) say(note string) (tea.Model, tea.Cmd) {
	m.note = note
	return m, tea.Println(note)
}

func (m Model) backToMenu(note string) (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.input = ""
	if note == "" {
		return m, nil
	}
	return m.say(note)
}

// finishAnalysis prints the outcome of the save step and returns to the menu
func (m Model) finishAnalysis(outcome string) (tea.Model, tea.Cmd) {
	m.report = ""
	m.state = stateMenu
	m.input = ""
	m.note = "🔁 Analysis complete. Returning to menu..."
	return m, tea.Batch(tea.Println(outcome), tea.Println("\n"+m.note))
}

func (m Model) errorNote(err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cli.ErrorStyle.Render("❌ File not found.")
	case errors.Is(err, context.Canceled):
		return "Recording cancelled."
	}
	return cli.ErrorStyle.Render(fmt.Sprintf("❌ %v", err))
}

func (m *Model) stopRecording() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) busy() bool {
	return m.state == stateRecording || m.state == stateAnalyzing
}

func (m Model) prompting() bool {
	switch m.state {
	case stateMenu, stateFilePrompt, stateSavePrompt, stateFilenamePrompt:
		return true
	}
	return false
}

func recordCmd(ctx context.Context, e Engine) tea.Cmd {
	return func() tea.Msg {
		take, err := e.Record(ctx)
		return takeMsg{take: take, err: err}
	}
}

func loadCmd(e Engine, path string) tea.Cmd {
	return func() tea.Msg {
		take, err := e.Load(path)
		return takeMsg{take: take, err: err}
	}
}

func analyzeCmd(e Engine, take *Take) tea.Cmd {
	return func() tea.Msg {
		report, err := e.Analyze(take)
		return reportMsg{report: report, err: err}
	}
}

func saveCmd(e Engine, name, report string) tea.Cmd {
	return func() tea.Msg {
		path, err := e.Save(name, report)
		return savedMsg{path: path, err: err}
	}
}

// tickCmd returns a command that sends a tick message every 100ms
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
