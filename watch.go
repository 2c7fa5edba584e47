// ABOUTME: Watch mode: live prompt view that regenerates when the analysis file changes
// ABOUTME: Monitors the analysis file with fsnotify and shows summary and prompts in a scrolling viewport

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"phonk-prompter/analysis"
	"phonk-prompter/prompt"
)

// watchModel holds the state for the live prompt viewer
type watchModel struct {
	path       string
	opts       RunOptions
	engine     *prompt.Engine
	load       func(string) (*analysis.Result, error)
	copy       func(string) error
	result     *analysis.Result
	prompts    []string
	viewport   viewport.Model
	width      int
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	lastReload time.Time
	reloads    int
	errorMsg   string
	statusMsg  string    // Transient, e.g. "Copied prompt to clipboard"
	statusAge  time.Time // When statusMsg was set
	ready      bool
}

// Key bindings for watch mode
type watchKeyMap struct {
	Reload key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

var watchKeys = watchKeyMap{
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy prompt"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles for watch mode
var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	watchStatusStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("15")).
				Padding(0, 1)

	watchHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	watchErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

const watchStatusDuration = 5 * time.Second

const (
	watchHeaderHeight = 2 // Title + blank line
	watchFooterHeight = 2 // Status + help
)

// fileChangeMsg is sent when the analysis file changes
type fileChangeMsg struct{}

// reloadCompleteMsg is sent after the analysis reload completes
type reloadCompleteMsg struct {
	result *analysis.Result
	err    error
}

// RunWatchMode starts the live viewer with file watching
func RunWatchMode(opts RunOptions) error {
	if opts.InputPath == stdinPath {
		return errors.New("watch mode needs a file, not stdin")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(opts.InputPath)); err != nil {
		return fmt.Errorf("failed to watch analysis file: %w", err)
	}

	m := newWatchModel(opts, newEngine(opts.Config), analysis.Load, clipboard.WriteAll, watcher)

	result, err := m.load(m.path)
	m = m.applyReload(reloadCompleteMsg{result: result, err: err})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch mode error: %w", err)
	}

	return nil
}

func newWatchModel(
	opts RunOptions,
	engine *prompt.Engine,
	load func(string) (*analysis.Result, error),
	copyFn func(string) error,
	watcher *fsnotify.Watcher,
) watchModel {
	return watchModel{
		path:     filepath.Clean(opts.InputPath),
		opts:     opts,
		engine:   engine,
		load:     load,
		copy:     copyFn,
		watcher:  watcher,
		debounce: time.Duration(opts.Config.WatchDebounceMS) * time.Millisecond,
	}
}

// Init initializes the watch model
func (m watchModel) Init() tea.Cmd {
	return waitForFileChange(m.watcher, m.path, m.debounce)
}

// waitForFileChange returns a command that waits for writes to path
func waitForFileChange(watcher *fsnotify.Watcher, path string, debounce time.Duration) tea.Cmd {
	if watcher == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(event.Name) != path {
					continue
				}

				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					// Debounce: wait a bit for atomic writes to complete
					time.Sleep(debounce)
					drainEvents(watcher)

					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}

				debugf("[WATCHER] Error: %v", err)
			}
		}
	}
}

// drainEvents drops events queued during the debounce window
func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}

// reloadAnalysis loads the analysis file in the background
func reloadAnalysis(load func(string) (*analysis.Result, error), path string) tea.Cmd {
	return func() tea.Msg {
		result, err := load(path)

		return reloadCompleteMsg{result: result, err: err}
	}
}

// applyReload regenerates prompts from a reloaded record
func (m watchModel) applyReload(msg reloadCompleteMsg) watchModel {
	if msg.err != nil {
		m.errorMsg = fmt.Sprintf("Error reloading: %v", msg.err)
		debugf("[WATCH] reload failed: %v", msg.err)

		return m
	}

	m.result = msg.result
	m.prompts = m.engine.GenerateVariations(*msg.result, m.opts.Request, max(m.opts.Variations, 1))
	m.lastReload = time.Now()
	m.reloads++
	m.errorMsg = ""
	m.statusMsg = ""

	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}

	debugf("[WATCH] reload %d: %s", m.reloads, m.prompts[0])

	return m
}

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-watchHeaderHeight-watchFooterHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}

		m.viewport.SetContent(m.renderContent())

		return m, nil

	case fileChangeMsg:
		return m, tea.Batch(
			reloadAnalysis(m.load, m.path),
			waitForFileChange(m.watcher, m.path, m.debounce), // Continue watching
		)

	case reloadCompleteMsg:
		return m.applyReload(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, watchKeys.Reload):
			return m, reloadAnalysis(m.load, m.path)

		case key.Matches(msg, watchKeys.Copy):
			m.copyPrompt()

			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *watchModel) copyPrompt() {
	if len(m.prompts) == 0 || m.copy == nil {
		m.setStatus("Nothing to copy")

		return
	}

	if err := m.copy(m.prompts[0]); err != nil {
		m.errorMsg = fmt.Sprintf("Copy failed: %v", err)

		return
	}

	m.setStatus("Copied prompt to clipboard")
}

func (m *watchModel) setStatus(msg string) {
	m.statusMsg = msg
	m.statusAge = time.Now()
}

// View renders the view
func (m watchModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := watchTitleStyle.Render("Watching: " + m.path)

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", title, m.viewport.View(), m.renderStatus(), m.renderHelp())
}

// renderContent renders summary, prompts and rule trace for the viewport
func (m watchModel) renderContent() string {
	if m.result == nil {
		return "No analysis loaded yet."
	}

	var b strings.Builder

	_ = writeSummary(&b, m.result)
	b.WriteString("\n")
	_ = writePrompts(&b, m.prompts)
	b.WriteString("\n")
	_ = writeExplanation(&b, m.engine.Explain(*m.result, m.opts.Request))

	return b.String()
}

// renderStatus renders the status bar
func (m watchModel) renderStatus() string {
	var text string

	switch {
	case m.errorMsg != "":
		text = watchErrorStyle.Render(m.errorMsg)
	case m.statusMsg != "" && time.Since(m.statusAge) < watchStatusDuration:
		text = m.statusMsg
	case m.reloads > 0:
		text = fmt.Sprintf("Reloads: %d | Last reload: %s", m.reloads, m.lastReload.Format("15:04:05"))
	default:
		text = "Waiting for analysis"
	}

	return watchStatusStyle.Width(m.width).Render(text)
}

// renderHelp renders the help text
func (m watchModel) renderHelp() string {
	return watchHelpStyle.Render("↑/↓: scroll | r: reload | c: copy prompt | q: quit")
}
