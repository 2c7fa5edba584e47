// ABOUTME: Prompt studio configuration and injected dependencies
// ABOUTME: Defines input parameters and collaborators for running the TUI

package tui

import "phonk-prompter/analysis"

// Options contains configuration for running the TUI
type Options struct {
	AnalysisPath string // Where the record came from; reloaded with ctrl+l (empty disables reload)
	Request      string // Initial request text
	OutputPath   string // Where ctrl+s writes the prompt
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Generator Generator
	Load      func(path string) (*analysis.Result, error)
	Copy      func(text string) error
	Write     func(path, text string) error
	Debugf    func(format string, args ...any)
}
