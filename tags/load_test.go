// ABOUTME: Tests for rule table loading
// ABOUTME: Validates embedded defaults, fallback on bad files and variant resolution

package tags

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	rules, errs := LoadDefault()
	if len(errs) != 0 {
		t.Fatalf("Expected no errors loading embedded tables, got %v", errs)
	}

	if got := len(rules.Genres.GenreTemplates); got != 32 {
		t.Errorf("Expected 32 genre templates, got %d", got)
	}

	for _, key := range []string{"drift", "memphis", "house", "dark"} {
		if len(rules.Tags.Genres[key]) == 0 {
			t.Errorf("Expected genre list %q to be populated", key)
		}
	}

	if rules.Tags.Variants.HeavyBass != "Heavy 808" {
		t.Errorf("Expected heavy bass variant 'Heavy 808', got %q", rules.Tags.Variants.HeavyBass)
	}

	if rules.Tags.Variants.LofiFX != "Lo-fi Static" {
		t.Errorf("Expected lo-fi variant 'Lo-fi Static', got %q", rules.Tags.Variants.LofiFX)
	}

	if rules.Genres.Variants.DistortedBass != "Distorted Bass" {
		t.Errorf("Expected distorted bass variant 'Distorted Bass', got %q", rules.Genres.Variants.DistortedBass)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	rules, errs := Load(filepath.Join(dir, "missing.json"), "")
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}

	if rules == nil {
		t.Fatal("Expected non-nil rules")
	}

	if len(rules.Tags.Genres) != 0 || len(rules.Tags.Moods) != 0 {
		t.Error("Expected empty tag library after load failure")
	}

	if rules.Tags.Variants != (Variants{}) {
		t.Errorf("Expected no variants on empty library, got %+v", rules.Tags.Variants)
	}

	// The other table is unaffected
	if len(rules.Genres.GenreTemplates) == 0 {
		t.Error("Expected genre library to still load from embedded defaults")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genres.json")

	if err := os.WriteFile(path, []byte(`{"genre_templates": [`), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rules, errs := Load("", path)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}

	if rules.Genres.GenreTemplates == nil || len(rules.Genres.GenreTemplates) != 0 {
		t.Errorf("Expected empty non-nil genre templates, got %v", rules.Genres.GenreTemplates)
	}

	if rules.Genres.MoodMappings == nil {
		t.Error("Expected non-nil mood mappings")
	}
}

func TestLoadResolvesVariants(t *testing.T) {
	dir := t.TempDir()
	tagPath := filepath.Join(dir, "tags.json")
	genrePath := filepath.Join(dir, "genres.json")

	tagJSON := `{
		"technical_audio": {"bass": ["B0", "B1"], "fx": ["F0"]},
		"variants": {"lofi_fx": "Custom FX"}
	}`
	genreJSON := `{"technical_mappings": {"bass_heavy": ["H0", "H1", "H2"]}}`

	if err := os.WriteFile(tagPath, []byte(tagJSON), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if err := os.WriteFile(genrePath, []byte(genreJSON), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rules, errs := Load(tagPath, genrePath)
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"heavy bass from position 0", rules.Tags.Variants.HeavyBass, "B0"},
		{"distorted bass from position 1", rules.Tags.Variants.DistortedBass, "B1"},
		{"explicit lofi variant wins", rules.Tags.Variants.LofiFX, "Custom FX"},
		{"preferred distorted bass from position 1", rules.Genres.Variants.DistortedBass, "H1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.got)
			}
		})
	}

	// Sections absent from the file behave as empty maps
	if rules.Tags.Moods == nil || rules.Genres.GenreTemplates == nil {
		t.Error("Expected absent sections to be empty, not nil")
	}
}

func TestShortListsLeaveVariantsEmpty(t *testing.T) {
	lib := TagLibrary{TechnicalAudio: map[string][]string{"bass": {"Only"}}}
	lib.resolve()

	if lib.Variants.HeavyBass != "Only" {
		t.Errorf("Expected heavy bass 'Only', got %q", lib.Variants.HeavyBass)
	}

	if lib.Variants.DistortedBass != "" {
		t.Errorf("Expected empty distorted bass, got %q", lib.Variants.DistortedBass)
	}

	if lib.Variants.LofiFX != "" {
		t.Errorf("Expected empty lofi variant, got %q", lib.Variants.LofiFX)
	}
}

func TestEmpty(t *testing.T) {
	rules := Empty()

	tagCategories, templates := rules.Counts()
	if tagCategories != 0 || templates != 0 {
		t.Errorf("Expected empty counts, got %d/%d", tagCategories, templates)
	}
}
