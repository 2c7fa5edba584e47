// ABOUTME: Shared initialization code for all modes (CLI, batch, watch, studio)
// ABOUTME: Provides config and rule-table loading, analysis input, and debug logging

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"phonk-prompter/analysis"
	"phonk-prompter/config"
	"phonk-prompter/prompt"
	"phonk-prompter/tags"
)

const debugLogFile = "phonk-prompter-debug.log"

// stdinPath selects standard input as the analysis source
const stdinPath = "-"

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	InputPath  string // Analysis JSON, audio file, "-" for stdin, or a list in batch mode
	Request    string
	Variations int
	OutputPath string // Write prompt(s) here as well as stdout
	Copy       bool   // Copy the prompt to the clipboard
	Explain    bool   // Show which rules fired
	Config     config.Config
}

// loadConfig reads the config file, falling back to defaults with a warning
func loadConfig(path string) config.Config {
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
	}

	debugf("[CONFIG] %s: %+v", path, cfg)

	return cfg
}

// newEngine loads the rule tables named in cfg and builds an engine.
// Load failures leave that table empty and are reported as warnings.
func newEngine(cfg config.Config) *prompt.Engine {
	rules, errs := tags.Load(cfg.TagLibraryPath, cfg.GenreLibraryPath)
	for _, err := range errs {
		log.Printf("Warning: %v", err)
	}

	tagCategories, templates := rules.Counts()
	debugf("[RULES] %d tag categories, %d genre templates", tagCategories, templates)

	return prompt.NewEngine(rules)
}

// loadInput reads an analysis record from a file or from stdin
func loadInput(path string, stdin io.Reader) (*analysis.Result, error) {
	if path != stdinPath {
		return analysis.Load(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return analysis.ParseOutput(data)
}

// writeFile writes text to path, replacing any existing content
func writeFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogFile && isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...any) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
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

var errNoPrompts = errors.New("no prompts generated")
