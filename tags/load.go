// ABOUTME: Loads the tag and genre rule tables from disk or from embedded defaults
// ABOUTME: Falls back to an empty library per table and reports errors instead of aborting

package tags

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/*.json
var defaultTables embed.FS

const (
	defaultTagLibrary   = "data/phonk_tags_library.json"
	defaultGenreLibrary = "data/genre_prompts_library.json"
)

// Load reads both rule tables and returns the resolved Rules.
// An empty path selects the embedded default for that table. A table that cannot
// be read or parsed is replaced by an empty one and its error is collected; the
// returned Rules is never nil.
func Load(tagPath, genrePath string) (*Rules, []error) {
	var errs []error

	rules := &Rules{}

	if err := readTable(tagPath, defaultTagLibrary, &rules.Tags); err != nil {
		errs = append(errs, fmt.Errorf("failed to load tag library: %w", err))
		rules.Tags = emptyTagLibrary()
	}

	if err := readTable(genrePath, defaultGenreLibrary, &rules.Genres); err != nil {
		errs = append(errs, fmt.Errorf("failed to load genre library: %w", err))
		rules.Genres = emptyGenreLibrary()
	}

	rules.Tags.fillNil()
	rules.Genres.fillNil()
	rules.Tags.resolve()
	rules.Genres.resolve()

	return rules, errs
}

// LoadDefault returns the embedded rule tables.
func LoadDefault() (*Rules, []error) {
	return Load("", "")
}

func readTable(path, fallback string, dst any) error {
	var (
		data []byte
		err  error
	)

	if path == "" {
		data, err = defaultTables.ReadFile(fallback)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", displayName(path, fallback), err)
	}

	return nil
}

func displayName(path, fallback string) string {
	if path == "" {
		return "embedded " + fallback
	}

	return path
}

// fillNil makes missing sections behave like empty ones.
func (l *TagLibrary) fillNil() {
	if l.Genres == nil {
		l.Genres = map[string][]string{}
	}

	if l.Moods == nil {
		l.Moods = map[string][]string{}
	}

	if l.TechnicalAudio == nil {
		l.TechnicalAudio = map[string][]string{}
	}

	if l.VisualVibes == nil {
		l.VisualVibes = map[string][]string{}
	}
}

func (l *GenrePromptLibrary) fillNil() {
	if l.GenreTemplates == nil {
		l.GenreTemplates = map[string]GenreTemplate{}
	}

	if l.MoodMappings == nil {
		l.MoodMappings = map[string][]string{}
	}

	if l.TechnicalMappings == nil {
		l.TechnicalMappings = map[string][]string{}
	}
}
