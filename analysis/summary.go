// ABOUTME: Human-readable summary of an analysis record for CLI and terminal UI display
// ABOUTME: Produces labeled fields such as "Key: A Minor (8A)" and mastering recommendations

package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one labeled line of a summary.
type Field struct {
	Label string
	Value string
}

const topGenreCount = 3

// Summary lists the record's fields in display order. Unset values show as "-".
func Summary(r *Result) []Field {
	fields := []Field{
		{"BPM", formatNumber(r.BPM, 1, "")},
		{"Key", formatKey(r.Key)},
		{"Energy", formatNumber(r.Energy, 1, "")},
		{"Loudness", formatNumber(r.Loudness, 1, "")},
		{"Spectral centroid", formatNumber(r.SpectralCentroid, 0, " Hz")},
		{"Genre", formatGenre(r)},
	}

	if top := r.TopGenres(topGenreCount); len(top) > 0 {
		parts := make([]string, len(top))
		for i, p := range top {
			parts[i] = fmt.Sprintf("%s %.0f%%", p.Genre, p.Value*100)
		}

		fields = append(fields, Field{"Top genres", strings.Join(parts, ", ")})
	}

	if lyrics := strings.TrimSpace(r.Lyrics); lyrics != "" {
		fields = append(fields, Field{"Lyrics", strings.Join(strings.Fields(lyrics), " ")})
	}

	if m := r.Mastering; m != nil {
		if m.LUFS.Valid {
			fields = append(fields, Field{"LUFS", strconv.FormatFloat(m.LUFS.Value, 'f', 1, 64)})
		}

		for _, rec := range m.Recommendations {
			value := rec.Message
			if rec.Action != "" {
				value += " -> " + rec.Action
			}

			fields = append(fields, Field{"Mastering " + rec.Type, value})
		}
	}

	return fields
}

func formatNumber(n Number, decimals int, unit string) string {
	if !n.Valid {
		return "-"
	}

	return strconv.FormatFloat(n.Value, 'f', decimals, 64) + unit
}

func formatKey(key string) string {
	if key == "" {
		return "-"
	}

	if code := CamelotCode(key); code != "" {
		return fmt.Sprintf("%s (%s)", key, code)
	}

	return key
}

func formatGenre(r *Result) string {
	if r.Genre == "" {
		return "-"
	}

	if r.GenreConfidence.Valid {
		return fmt.Sprintf("%s (%.0f%%)", r.Genre, r.GenreConfidence.Value*100)
	}

	return r.Genre
}
