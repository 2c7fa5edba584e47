// ABOUTME: CLI mode implementation for one-shot prompt generation
// ABOUTME: Loads one analysis record, prints its summary and prompt(s), and optionally saves or copies them

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"phonk-prompter/analysis"
	"phonk-prompter/prompt"
)

// RunCLI executes CLI mode generation
func RunCLI(opts RunOptions) error {
	engine := newEngine(opts.Config)

	result, err := loadInput(opts.InputPath, os.Stdin)
	if err != nil {
		return err
	}

	return generateAndPrint(os.Stdout, engine, result, opts)
}

// generateAndPrint renders summary, prompts and side outputs for one record
func generateAndPrint(w io.Writer, engine *prompt.Engine, result *analysis.Result, opts RunOptions) error {
	if err := writeSummary(w, result); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	prompts := engine.GenerateVariations(*result, opts.Request, max(opts.Variations, 1))
	debugf("[CLI] %s request=%q -> %s", opts.InputPath, opts.Request, prompts[0])

	if err := writePrompts(w, prompts); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}

	if opts.Explain {
		if err := writeExplanation(w, engine.Explain(*result, opts.Request)); err != nil {
			return fmt.Errorf("failed to write explanation: %w", err)
		}
	}

	if opts.OutputPath != "" {
		if err := writeFile(opts.OutputPath, strings.Join(prompts, "\n")+"\n"); err != nil {
			return err
		}

		fmt.Fprintf(w, "\nWrote prompt to: %s\n", opts.OutputPath)
	}

	if opts.Copy {
		if err := clipboard.WriteAll(prompts[0]); err != nil {
			// Clipboard is a convenience; the prompt is already printed
			log.Printf("Warning: failed to copy prompt: %v", err)
		} else {
			fmt.Fprintln(w, "Copied prompt to clipboard")
		}
	}

	return nil
}
