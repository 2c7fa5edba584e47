// ABOUTME: Converts between musical key names ("A Minor") and Camelot wheel codes ("8A")
// ABOUTME: Used to display keys the way DJ software does and to read keys stored in tag comments

package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CamelotKey represents a parsed Camelot key
type CamelotKey struct {
	Letter string // "A" (minor) or "B" (major)
	Number int    // 1-12
}

var camelotKeyRegex = regexp.MustCompile(`^(\d+)([AB])$`)

// Camelot positions indexed by pitch class, C = 0.
var (
	minorWheel = [12]int{5, 12, 7, 2, 9, 4, 11, 6, 1, 8, 3, 10}
	majorWheel = [12]int{8, 3, 10, 5, 12, 7, 2, 9, 4, 11, 6, 1}
)

var pitchClasses = map[string]int{
	"c":  0,
	"b#": 0,
	"c#": 1,
	"db": 1,
	"d":  2,
	"d#": 3,
	"eb": 3,
	"e":  4,
	"fb": 4,
	"f":  5,
	"e#": 5,
	"f#": 6,
	"gb": 6,
	"g":  7,
	"g#": 8,
	"ab": 8,
	"a":  9,
	"a#": 10,
	"bb": 10,
	"b":  11,
	"cb": 11,
}

// Sharp spellings, matching what the analyzer reports.
var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParseCamelotKey parses a Camelot key string like "8A" into structured form
func ParseCamelotKey(key string) (*CamelotKey, error) {
	if key == "" {
		return nil, fmt.Errorf("empty key")
	}

	matches := camelotKeyRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(key)))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid key format: %s", key)
	}

	number, err := strconv.Atoi(matches[1])
	if err != nil || number < 1 || number > 12 {
		return nil, fmt.Errorf("invalid key number: %s", matches[1])
	}

	return &CamelotKey{
		Letter: matches[2],
		Number: number,
	}, nil
}

// String returns the string representation of a CamelotKey
func (k *CamelotKey) String() string {
	return fmt.Sprintf("%d%s", k.Number, k.Letter)
}

// Name returns the key name with sharp spelling, e.g. "A Minor".
func (k *CamelotKey) Name() string {
	wheel, mode := majorWheel, "Major"
	if k.Letter == "A" {
		wheel, mode = minorWheel, "Minor"
	}

	for pc, n := range wheel {
		if n == k.Number {
			return pitchNames[pc] + " " + mode
		}
	}

	return ""
}

// ParseKeyName parses names such as "A Minor", "F# major", "Bbm" or "Eb".
// A bare tonic is treated as major.
func ParseKeyName(name string) (*CamelotKey, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" || s == "unknown" {
		return nil, fmt.Errorf("no key")
	}

	minor := false

	switch {
	case strings.HasSuffix(s, "minor"):
		minor = true
		s = strings.TrimSuffix(s, "minor")
	case strings.HasSuffix(s, "major"):
		s = strings.TrimSuffix(s, "major")
	case strings.HasSuffix(s, "min"):
		minor = true
		s = strings.TrimSuffix(s, "min")
	case strings.HasSuffix(s, "maj"):
		s = strings.TrimSuffix(s, "maj")
	case len(s) > 1 && strings.HasSuffix(s, "m"):
		minor = true
		s = strings.TrimSuffix(s, "m")
	}

	pc, ok := pitchClasses[strings.TrimSpace(s)]
	if !ok {
		return nil, fmt.Errorf("unknown key: %s", name)
	}

	if minor {
		return &CamelotKey{Letter: "A", Number: minorWheel[pc]}, nil
	}

	return &CamelotKey{Letter: "B", Number: majorWheel[pc]}, nil
}

// CamelotCode returns the Camelot code for a key name, or "" when it cannot be parsed.
// Example: "A Minor" -> "8A"
func CamelotCode(name string) string {
	k, err := ParseKeyName(name)
	if err != nil {
		return ""
	}

	return k.String()
}
