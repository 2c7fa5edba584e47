// ABOUTME: Defines the analysis record consumed by the prompt engine
// ABOUTME: Decodes analyzer JSON output, tolerating noise around the payload and loosely typed numbers

// Package analysis provides the analysis records the prompt engine consumes.
// Records come either from the external analyzer's JSON output or from the
// tags embedded in an audio file. No signal processing happens here.
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Number is a float that decodes from JSON numbers and numeric strings.
// null, absent, NaN and anything non-numeric decode as "not set" instead of failing.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a set Number.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}

	return Number{Value: v, Valid: true}
}

// Float returns the value, or 0 when not set.
func (n Number) Float() float64 {
	if !n.Valid {
		return 0
	}

	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // malformed strings count as not set
		}

		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil //nolint:nilerr // non-numeric values count as not set
	}

	*n = Num(v)

	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.Value)
}

// Recommendation is a single mastering hint from the analyzer.
type Recommendation struct {
	Type    string `json:"type"` // "success", "warning" or "error"
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// Mastering carries the analyzer's loudness and peak measurements.
type Mastering struct {
	LUFS            Number           `json:"lufs"`
	Peak            Peak             `json:"peak"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Peak holds true-peak information.
type Peak struct {
	PeakDBFS         Number `json:"peak_dbfs"`
	ClippingDetected bool   `json:"clipping_detected"`
}

// Result is one analysis record.
type Result struct {
	BPM                Number             `json:"bpm"`
	Key                string             `json:"key,omitempty"`
	Energy             Number             `json:"energy"`
	Loudness           Number             `json:"loudness"`
	SpectralCentroid   Number             `json:"spectral_centroid"`
	SpectralMagnitude  []float64          `json:"spectral_magnitude,omitempty"`
	Genre              string             `json:"genre,omitempty"`
	GenreConfidence    Number             `json:"genre_confidence"`
	GenreProbabilities map[string]float64 `json:"genre_probabilities,omitempty"`
	Lyrics             string             `json:"lyrics,omitempty"`
	Mastering          *Mastering         `json:"mastering,omitempty"`
	Error              string             `json:"error,omitempty"`

	// Source is the file the record was read from. Not part of the wire format.
	Source string `json:"-"`
}

// Probability is one entry of the genre probability distribution.
type Probability struct {
	Genre string
	Value float64
}

// TopGenres returns the n most probable genres, highest first, ties broken by name.
func (r *Result) TopGenres(n int) []Probability {
	probs := make([]Probability, 0, len(r.GenreProbabilities))
	for genre, value := range r.GenreProbabilities {
		probs = append(probs, Probability{Genre: genre, Value: value})
	}

	sort.Slice(probs, func(i, j int) bool {
		if probs[i].Value != probs[j].Value {
			return probs[i].Value > probs[j].Value
		}

		return probs[i].Genre < probs[j].Genre
	})

	if n >= 0 && n < len(probs) {
		probs = probs[:n]
	}

	return probs
}

// ErrNoJSON is returned when analyzer output contains no JSON object.
var ErrNoJSON = errors.New("no JSON found in analyzer output")

// ParseOutput decodes analyzer output. Anything before the first '{' and after
// the last '}' is ignored, so warnings printed around the payload do not matter.
// A payload with a non-empty "error" field is returned as an error.
func ParseOutput(data []byte) (*Result, error) {
	start := bytes.IndexByte(data, '{')
	if start == -1 {
		return nil, ErrNoJSON
	}

	end := bytes.LastIndexByte(data, '}')
	if end < start {
		return nil, errors.New("invalid JSON format: no closing brace")
	}

	var result Result
	if err := json.Unmarshal(data[start:end+1], &result); err != nil {
		return nil, fmt.Errorf("failed to parse analyzer output: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("analyzer reported error: %s", result.Error)
	}

	return &result, nil
}

// ReadFile reads and decodes a saved analyzer output file.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	result, err := ParseOutput(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result.Source = path

	return result, nil
}
