// ABOUTME: Studio mode entry point wiring the engine and I/O into the interactive TUI
// ABOUTME: Loads the starting analysis record and hands collaborators to the tui package

package main

import (
	"os"

	"github.com/atotto/clipboard"

	"phonk-prompter/analysis"
	"phonk-prompter/tui"
)

// defaultStudioOutput is where ctrl+s saves when -output is not given
const defaultStudioOutput = "phonk-prompt.txt"

// RunStudio runs the interactive prompt studio
func RunStudio(opts RunOptions) error {
	result, err := loadInput(opts.InputPath, os.Stdin)
	if err != nil {
		return err
	}

	return tui.Run(result, studioOptions(opts), studioDependencies(opts))
}

// studioOptions maps command-line options onto the studio's options
func studioOptions(opts RunOptions) tui.Options {
	studio := tui.Options{
		AnalysisPath: opts.InputPath,
		Request:      opts.Request,
		OutputPath:   opts.OutputPath,
	}

	// Stdin can't be read twice
	if opts.InputPath == stdinPath {
		studio.AnalysisPath = ""
	}

	if studio.OutputPath == "" {
		studio.OutputPath = defaultStudioOutput
	}

	return studio
}

func studioDependencies(opts RunOptions) tui.Dependencies {
	return tui.Dependencies{
		Generator: newEngine(opts.Config),
		Load:      analysis.Load,
		Copy:      clipboard.WriteAll,
		Write:     writeFile,
		Debugf:    debugf,
	}
}
