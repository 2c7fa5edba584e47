// ABOUTME: Configuration management for rule-table locations and prompt generation defaults
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

const appName = "phonk-prompter"

// Config holds user-tunable settings
type Config struct {
	// Rule tables; empty means the embedded defaults
	TagLibraryPath   string `toml:"tag_library_path"`
	GenreLibraryPath string `toml:"genre_library_path"`

	// Generation
	DefaultRequest string `toml:"default_request"`
	Variations     int    `toml:"variations"`

	// Batch and watch modes
	BatchWorkers    int `toml:"batch_workers"`
	WatchDebounceMS int `toml:"watch_debounce_ms"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/phonk-prompter/config.toml
func GetConfigPath() string {
	local := "./" + appName + ".toml"

	// First try current directory
	if _, err := os.Stat(local); err == nil {
		return local
	}

	// Then try ~/.config/phonk-prompter/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return local
	}

	return filepath.Join(home, ".config", appName, "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return normalize(config), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	config = normalize(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Variations:      3,
		BatchWorkers:    runtime.NumCPU(),
		WatchDebounceMS: 100,
	}
}

// normalize replaces out-of-range values with defaults
func normalize(config Config) Config {
	defaults := DefaultConfig()

	if config.Variations < 1 {
		config.Variations = defaults.Variations
	}

	if config.BatchWorkers < 1 {
		config.BatchWorkers = defaults.BatchWorkers
	}

	if config.WatchDebounceMS < 1 {
		config.WatchDebounceMS = defaults.WatchDebounceMS
	}

	return config
}
