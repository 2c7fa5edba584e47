// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with fakes

package tui

import (
	"phonk-prompter/analysis"
	"phonk-prompter/prompt"
)

// Generator produces prompts along with the rules that fired
type Generator interface {
	Explain(result analysis.Result, request string) prompt.Explanation
}
