// ABOUTME: Text output for CLI, batch and watch modes
// ABOUTME: Renders analysis summaries, prompts and rule traces with tabwriter and lipgloss

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"phonk-prompter/analysis"
	"phonk-prompter/prompt"
)

// Styles for CLI output
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// writeSummary prints the analysis summary as an aligned label/value table
func writeSummary(w io.Writer, r *analysis.Result) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Analysis")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, field := range analysis.Summary(r) {
		if _, err := fmt.Fprintf(tw, "  %s:\t%s\n", field.Label, truncate(field.Value, 100)); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// writePrompts prints prompts, numbering them when there is more than one
func writePrompts(w io.Writer, prompts []string) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Prompt")); err != nil {
		return err
	}

	for i, p := range prompts {
		line := promptStyle.Render(p)
		if len(prompts) > 1 {
			line = fmt.Sprintf("%d. %s", i+1, line)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// writeExplanation prints the rules that fired
func writeExplanation(w io.Writer, exp prompt.Explanation) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Rules: %s\n", strings.Join(exp.Fired, ", "))

	switch {
	case exp.Bucket != "":
		fmt.Fprintf(&b, "Genre: no template for %q, BPM bucket %s\n", exp.GenreKey, exp.Bucket)
	case exp.GenreKey != "":
		fmt.Fprintf(&b, "Genre: template %s\n", exp.GenreKey)
	}

	_, err := fmt.Fprint(w, dimStyle.Render(strings.TrimRight(b.String(), "\n"))+"\n")

	return err
}

// batchRow is one line of batch output
type batchRow struct {
	Source string
	Result *analysis.Result
	Prompt string
	Err    error
}

// writeBatchTable prints successful batch rows as a table, in input order
func writeBatchTable(w io.Writer, rows []batchRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "#\tFile\tBPM\tKey\tGenre\tPrompt"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "---\t----\t---\t---\t-----\t------"); err != nil {
		return err
	}

	n := 0

	for _, row := range rows {
		if row.Err != nil {
			continue
		}

		n++

		if _, err := fmt.Fprintf(tw, "%d\t%s\t%.0f\t%s\t%s\t%s\n",
			n,
			truncate(filepath.Base(row.Source), 30),
			row.Result.BPM.Float(),
			keyCode(row.Result.Key),
			truncate(row.Result.Genre, 15),
			row.Prompt,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// keyCode prefers the Camelot code, falling back to the raw key name
func keyCode(key string) string {
	if code := analysis.CamelotCode(key); code != "" {
		return code
	}

	if key == "" {
		return "-"
	}

	return key
}
