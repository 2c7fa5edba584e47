// ABOUTME: Prompt studio model and core state management
// ABOUTME: Bubble Tea model that regenerates the style prompt on every request edit

// Package tui provides an interactive terminal studio for composing style prompts.
// The analysis record stays fixed while the user edits the free-text request;
// tags and the final prompt update live as the request changes.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"phonk-prompter/analysis"
	"phonk-prompter/prompt"
)

// Layout constants for UI dimensions
const (
	analysisPanelWidth = 42 // Left panel width for the analysis summary
	panelPadding       = 2  // Horizontal spacing between panels
	minPromptWidth     = 30 // Minimum right panel width
	inputChrome        = 6  // Prompt marker plus padding around the text input
)

// Interaction constants
const (
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 100             // Maximum undo/redo history items
	requestCharLimit      = 280
)

// analysisLoadedMsg carries a reloaded analysis record
type analysisLoadedMsg struct {
	result *analysis.Result
	err    error
}

// model holds the TUI state
type model struct {
	// Dependencies
	generator Generator
	load      func(string) (*analysis.Result, error)
	copy      func(string) error
	write     func(string, string) error
	debugf    func(string, ...any)

	opts Options

	// Prompt state
	result      analysis.Result
	input       textinput.Model
	explanation prompt.Explanation
	style       string
	undoMgr     *UndoManager

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string    // Temporary status message (e.g., "Copied to clipboard")
	statusMsgAge time.Time // When status message was set
}

// Key bindings
type keyMap struct {
	Undo   key.Binding
	Redo   key.Binding
	Copy   key.Binding
	Save   key.Binding
	Reload key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Undo: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy prompt"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save prompt"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "reload analysis"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear request"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	chipStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Run starts the prompt studio for a loaded analysis record
func Run(result *analysis.Result, opts Options, deps Dependencies) error {
	m := initModel(result, opts, deps)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("studio error: %w", err)
	}

	return nil
}

// initModel creates the initial model state
func initModel(result *analysis.Result, opts Options, deps Dependencies) model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "describe the vibe: dark, night drive, cowbell, 808..."
	input.CharLimit = requestCharLimit
	input.SetValue(opts.Request)
	input.Focus()

	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...any) {}
	}

	m := model{
		generator: deps.Generator,
		load:      deps.Load,
		copy:      deps.Copy,
		write:     deps.Write,
		debugf:    debugf,
		opts:      opts,
		input:     input,
		undoMgr:   NewUndoManager(maxUndoStackSize),
	}

	if result != nil {
		m.result = *result
	}

	m.regenerate()

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// regenerate rebuilds tags and prompt from the current record and request
func (m *model) regenerate() {
	m.explanation = m.generator.Explain(m.result, m.input.Value())
	m.style = prompt.Format(m.explanation.Tags)
	m.debugf("[STUDIO] request=%q tags=%d fired=%v", m.input.Value(), len(m.explanation.Tags), m.explanation.Fired)
}

// currentState snapshots the request input
func (m model) currentState() RequestState {
	return RequestState{Text: m.input.Value(), Cursor: m.input.Position()}
}

// restore applies a snapshot to the request input
func (m *model) restore(state RequestState) {
	m.input.SetValue(state.Text)
	m.input.SetCursor(state.Cursor)
	m.regenerate()
}

// setStatus shows a transient status message
func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// loadAnalysis reloads the record in the background
func loadAnalysis(load func(string) (*analysis.Result, error), path string) tea.Cmd {
	return func() tea.Msg {
		result, err := load(path)

		return analysisLoadedMsg{result: result, err: err}
	}
}
