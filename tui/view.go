// ABOUTME: Rendering and display functions for the prompt studio
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"phonk-prompter/analysis"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return m.style + "\n"
	}

	leftPanel := lipgloss.NewStyle().
		Width(analysisPanelWidth).
		Padding(0, 1).
		Render(m.renderAnalysis())

	rightPanel := lipgloss.NewStyle().
		Width(m.promptPanelWidth()).
		Padding(0, 1).
		Render(m.renderPrompt())

	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	return combined + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

// promptPanelWidth is the width left for the request and tag panel
func (m model) promptPanelWidth() int {
	return max(m.width-analysisPanelWidth-panelPadding, minPromptWidth)
}

// renderAnalysis renders the analysis summary panel
func (m model) renderAnalysis() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Analysis") + "\n\n")

	for _, field := range analysis.Summary(&m.result) {
		value := truncate(field.Value, analysisPanelWidth-20)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-17s", field.Label)), valueStyle.Render(value))
	}

	return b.String()
}

// renderPrompt renders the request input, tag chips and the final prompt
func (m model) renderPrompt() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Request") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	b.WriteString(titleStyle.Render(fmt.Sprintf("Tags (%d)", len(m.explanation.Tags))) + "\n\n")
	b.WriteString(renderChips(m.explanation.Tags, m.promptPanelWidth()-2) + "\n\n")

	b.WriteString(titleStyle.Render("Prompt") + "\n\n")
	b.WriteString(promptStyle.Width(m.promptPanelWidth()-2).Render(m.style) + "\n\n")

	b.WriteString(labelStyle.Render("Rules: "+strings.Join(m.explanation.Fired, ", ")) + "\n")

	if m.explanation.Bucket != "" {
		b.WriteString(labelStyle.Render("No template for genre, using BPM bucket: "+m.explanation.Bucket) + "\n")
	}

	return b.String()
}

// renderChips lays tags out as chips, wrapping at width
func renderChips(tags []string, width int) string {
	if len(tags) == 0 {
		return labelStyle.Render("(no tags)")
	}

	var (
		lines   []string
		line    string
		lineLen int
	)

	for _, tag := range tags {
		chip := chipStyle.Render(tag)
		chipLen := lipgloss.Width(chip)

		if lineLen > 0 && lineLen+1+chipLen > width {
			lines = append(lines, line)
			line, lineLen = "", 0
		}

		if lineLen > 0 {
			line += " "
			lineLen++
		}

		line += chip
		lineLen += chipLen
	}

	lines = append(lines, line)

	return strings.Join(lines, "\n")
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		msg := m.statusMsg
		if strings.Contains(msg, "failed") {
			msg = errorStyle.Render(msg)
		}

		return statusStyle.Width(m.width).Render(msg)
	}

	source := m.result.Source
	if source == "" {
		source = "stdin"
	}

	text := fmt.Sprintf("%s | %d tags | u:%d r:%d", truncate(source, 40), len(m.explanation.Tags), m.undoMgr.UndoSize(), m.undoMgr.RedoSize())

	return statusStyle.Width(m.width).Render(text)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	bindings := []struct{ key, desc string }{
		{keys.Undo.Help().Key, keys.Undo.Help().Desc},
		{keys.Redo.Help().Key, keys.Redo.Help().Desc},
		{keys.Clear.Help().Key, keys.Clear.Help().Desc},
		{keys.Copy.Help().Key, keys.Copy.Help().Desc},
		{keys.Save.Help().Key, keys.Save.Help().Desc},
		{keys.Reload.Help().Key, keys.Reload.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.key + ": " + b.desc
	}

	return helpStyle.Render(strings.Join(parts, " | "))
}

// truncate shortens string to maxLen runes, adding "..." if needed
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
