// ABOUTME: Event handling and state updates for the prompt studio
// ABOUTME: Implements the Bubble Tea Update() function and key handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.promptPanelWidth()-inputChrome, 10)

		return m, nil

	case analysisLoadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err))

			return m, nil
		}

		m.result = *msg.result
		m.regenerate()
		m.setStatus("Analysis reloaded")

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// handleKey dispatches studio shortcuts and forwards everything else to the input
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, keys.Undo):
		if state, ok := m.undoMgr.Undo(m.currentState()); ok {
			m.restore(state)
		}

		return m, nil

	case key.Matches(msg, keys.Redo):
		if state, ok := m.undoMgr.Redo(m.currentState()); ok {
			m.restore(state)
		}

		return m, nil

	case key.Matches(msg, keys.Clear):
		if m.input.Value() != "" {
			m.undoMgr.Push(m.currentState())
			m.restore(RequestState{})
		}

		return m, nil

	case key.Matches(msg, keys.Copy):
		m.copyPrompt()

		return m, nil

	case key.Matches(msg, keys.Save):
		m.savePrompt()

		return m, nil

	case key.Matches(msg, keys.Reload):
		if m.opts.AnalysisPath == "" || m.load == nil {
			m.setStatus("Nothing to reload")

			return m, nil
		}

		return m, loadAnalysis(m.load, m.opts.AnalysisPath)
	}

	before := m.currentState()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before.Text {
		m.undoMgr.Push(before)
		m.regenerate()
	}

	return m, cmd
}

func (m *model) copyPrompt() {
	if m.copy == nil {
		m.setStatus("Clipboard unavailable")

		return
	}

	if err := m.copy(m.style); err != nil {
		m.setStatus(fmt.Sprintf("Copy failed: %v", err))

		return
	}

	m.setStatus("Prompt copied to clipboard")
}

func (m *model) savePrompt() {
	if m.write == nil || m.opts.OutputPath == "" {
		m.setStatus("No output file configured")

		return
	}

	if err := m.write(m.opts.OutputPath, m.style+"\n"); err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err))

		return
	}

	m.setStatus("Prompt saved to " + m.opts.OutputPath)
}
