// ABOUTME: Tests for analysis summaries
// ABOUTME: Validates field labels, placeholders for unset values and mastering notes

package analysis

import "testing"

func TestSummary(t *testing.T) {
	r := &Result{
		BPM:                Num(143.64),
		Key:                "A Minor",
		Energy:             Num(80),
		SpectralCentroid:   Num(1850.4),
		Genre:              "Dark Phonk",
		GenreConfidence:    Num(0.87),
		GenreProbabilities: map[string]float64{"Dark Phonk": 0.87, "Trap": 0.1, "EDM": 0.02, "Pop": 0.01},
		Lyrics:             "  ride\n through   the night ",
		Mastering: &Mastering{
			LUFS: Num(-9.46),
			Recommendations: []Recommendation{
				{Type: "warning", Message: "Peak too hot", Action: "Use a limiter"},
				{Type: "success", Message: "Loudness ok"},
			},
		},
	}

	expected := []Field{
		{"BPM", "143.6"},
		{"Key", "A Minor (8A)"},
		{"Energy", "80.0"},
		{"Loudness", "-"},
		{"Spectral centroid", "1850 Hz"},
		{"Genre", "Dark Phonk (87%)"},
		{"Top genres", "Dark Phonk 87%, Trap 10%, EDM 2%"},
		{"Lyrics", "ride through the night"},
		{"LUFS", "-9.5"},
		{"Mastering warning", "Peak too hot -> Use a limiter"},
		{"Mastering success", "Loudness ok"},
	}

	got := Summary(r)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d fields, got %d: %+v", len(expected), len(got), got)
	}

	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Field %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestSummaryMinimal(t *testing.T) {
	got := Summary(&Result{Key: "Unknown"})
	if len(got) != 6 {
		t.Fatalf("Expected 6 fields, got %d", len(got))
	}

	if got[0].Value != "-" {
		t.Errorf("Expected unset BPM to show '-', got %q", got[0].Value)
	}

	if got[1].Value != "Unknown" {
		t.Errorf("Expected unparseable key to show as-is, got %q", got[1].Value)
	}
}
