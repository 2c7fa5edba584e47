// ABOUTME: Entry point for phonk-prompter application
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI, batch, watch or studio modes

// Package main provides the entry point for phonk-prompter, a rule-based style prompt generator for phonk tracks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"phonk-prompter/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	request := flag.String("request", "", "free-text request, e.g. \"dark night drive, heavy 808\" (default: config default_request)")
	variations := flag.Int("variations", 0, "number of prompt variations to print (default: config variations)")
	explain := flag.Bool("explain", false, "show which rules fired")
	output := flag.String("output", "", "also write the prompt(s) to this file")
	copyPrompt := flag.Bool("copy", false, "copy the prompt to the clipboard")
	visual := flag.Bool("visual", false, "run the interactive prompt studio")
	watch := flag.Bool("watch", false, "watch the analysis file and regenerate on change")
	batch := flag.Bool("batch", false, "treat the input as a list of analysis/audio files")
	configPath := flag.String("config", "", "config file (default: ./phonk-prompter.toml or ~/.config/phonk-prompter/config.toml)")
	tagLibrary := flag.String("tags", "", "tag library JSON (default: embedded)")
	genreLibrary := flag.String("genres", "", "genre prompt library JSON (default: embedded)")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	initConfig := flag.Bool("init-config", false, "write the default config file and exit")
	flag.Parse()

	if *initConfig {
		return writeDefaultConfig(*configPath)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: phonk-prompter [flags] <analysis.json | audio file | ->")
		fmt.Println("Example: phonk-prompter -request \"dark night drive\" track_analysis.json")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *debug {
		if err := SetupDebugLog(debugLogFile); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	cfg := loadConfig(*configPath)

	// Flags override config values only when given
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["tags"] {
		cfg.TagLibraryPath = *tagLibrary
	}

	if set["genres"] {
		cfg.GenreLibraryPath = *genreLibrary
	}

	if set["variations"] && *variations > 0 {
		cfg.Variations = *variations
	}

	opts := RunOptions{
		InputPath:  args[0],
		Request:    cfg.DefaultRequest,
		Variations: cfg.Variations,
		OutputPath: *output,
		Copy:       *copyPrompt,
		Explain:    *explain,
		Config:     cfg,
	}

	if set["request"] {
		opts.Request = *request
	}

	mode, runMode := selectMode(*visual, *watch, *batch)
	if runMode == nil {
		log.Printf("Choose at most one of -visual, -watch and -batch")

		return 1
	}

	debugf("[MAIN] mode=%s input=%s request=%q", mode, opts.InputPath, opts.Request)

	if err := runMode(opts); err != nil {
		log.Printf("%s error: %v", mode, err)

		return 1
	}

	return 0
}

// selectMode picks the runner for the requested mode, or nil when modes conflict
func selectMode(visual, watch, batch bool) (string, func(RunOptions) error) {
	count := 0

	for _, on := range []bool{visual, watch, batch} {
		if on {
			count++
		}
	}

	switch {
	case count > 1:
		return "", nil
	case visual:
		return "Studio", RunStudio
	case watch:
		return "Watch", RunWatchMode
	case batch:
		return "Batch", RunBatch
	default:
		return "CLI", RunCLI
	}
}

// writeDefaultConfig writes the default config to path (or the default location)
func writeDefaultConfig(path string) int {
	if path == "" {
		path = config.GetConfigPath()
	}

	if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
		log.Printf("Failed to write config: %v", err)

		return 1
	}

	fmt.Printf("Wrote default config to: %s\n", path)

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
