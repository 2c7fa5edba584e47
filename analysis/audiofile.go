// ABOUTME: Builds a partial analysis record from an audio file's embedded tags
// ABOUTME: Reads genre, lyrics, BPM and the "8A - Energy 6" comment convention written by DJ tools

package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Compile regexes once at package initialization
var (
	keyRegex    = regexp.MustCompile(`(\d+[AB])\s*-\s*Energy`)
	energyRegex = regexp.MustCompile(`Energy\s+(\d+)`)
)

// Tag comments carry energy on a 1-10 scale; records use 0-100.
const energyScale = 10

// FromAudioFile derives an analysis record from the tags of an audio file.
// Loudness and spectral centroid need signal analysis and stay unset.
func FromAudioFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	result := fromMetadata(metadata)
	result.Source = path

	return result, nil
}

func fromMetadata(metadata tag.Metadata) *Result {
	comments := metadata.Comment()

	result := &Result{
		BPM:    rawBPM(metadata.Raw()),
		Genre:  strings.TrimSpace(metadata.Genre()),
		Lyrics: strings.TrimSpace(metadata.Lyrics()),
	}

	if code := extractKey(comments); code != "" {
		if key, err := ParseCamelotKey(code); err == nil {
			result.Key = key.Name()
		}
	}

	if energy := extractEnergy(comments); energy > 0 {
		result.Energy = Num(float64(energy * energyScale))
	}

	return result
}

// rawBPM looks for a BPM value under the tag names used by common formats
func rawBPM(raw map[string]any) Number {
	for _, key := range []string{"BPM", "TBPM", "bpm", "tempo"} {
		val, exists := raw[key]
		if !exists {
			continue
		}

		var bpm float64

		switch v := val.(type) {
		case string:
			bpm, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
		case int:
			bpm = float64(v)
		case float64:
			bpm = v
		}

		if bpm > 0 {
			return Num(bpm)
		}
	}

	return Number{}
}

// extractKey extracts Camelot key from comments string
// Example: "8A - Energy 6" -> "8A"
func extractKey(comments string) string {
	matches := keyRegex.FindStringSubmatch(comments)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractEnergy extracts energy level from comments string
// Example: "8A - Energy 6" -> 6
func extractEnergy(comments string) int {
	matches := energyRegex.FindStringSubmatch(comments)
	if len(matches) > 1 {
		energy, err := strconv.Atoi(matches[1])
		if err == nil {
			return energy
		}
	}

	return 0
}

// IsAnalysisFile reports whether path looks like saved analyzer output rather than audio.
func IsAnalysisFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads an analysis record from either a saved analyzer output or an audio file.
func Load(path string) (*Result, error) {
	if IsAnalysisFile(path) {
		return ReadFile(path)
	}

	return FromAudioFile(path)
}
