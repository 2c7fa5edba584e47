// ABOUTME: Tests for prompt synthesis: rule firing order, precedence, de-duplication and defaults
// ABOUTME: Uses an injected rule fixture so expectations do not depend on the embedded tables

package prompt

import (
	"reflect"
	"sync"
	"testing"

	"phonk-prompter/analysis"
	"phonk-prompter/tags"
)

func fixtureRules() *tags.Rules {
	return &tags.Rules{
		Tags: tags.TagLibrary{
			Genres: map[string][]string{
				"drift":   {"Drift Phonk", "Cowbell", "Fast"},
				"memphis": {"Memphis Phonk", "Cassette"},
				"house":   {"Brazilian Phonk", "Funk Groove"},
				"dark":    {"Dark Phonk Plain"},
			},
			Moods: map[string][]string{
				"energetic":   {"Energetic", "Hype"},
				"melancholic": {"Sad Plain"},
				"mysterious":  {"Mysterious Plain"},
				"aggressive":  {"Aggressive Plain"},
			},
			TechnicalAudio: map[string][]string{
				"bass":  {"Heavy 808", "Distorted 808"},
				"vocal": {"Rap Vocals"},
				"perc":  {"Cowbell"},
				"fx":    {"Lo-fi Static", "Vinyl"},
			},
			VisualVibes: map[string][]string{
				"night": {"Night Drive"},
				"urban": {"Street Racing"},
			},
			Variants: tags.Variants{
				HeavyBass:     "Heavy 808",
				DistortedBass: "Distorted 808",
				LofiFX:        "Lo-fi Static",
			},
		},
		Genres: tags.GenrePromptLibrary{
			GenreTemplates: map[string]tags.GenreTemplate{
				"Dark Phonk": {BaseTags: []string{"Dark Phonk", "Memphis Samples"}, TechnicalTags: []string{"Distorted 808"}},
				"Soul_RnB":   {BaseTags: []string{"Soul"}},
			},
			MoodMappings: map[string][]string{
				"dark":       {"Dark", "Sinister"},
				"mysterious": {"Mysterious"},
				"aggressive": {"Aggressive"},
			},
			TechnicalMappings: map[string][]string{
				"vocal_forward": {"Vocal-forward"},
				"bass_heavy":    {"Heavy Bass", "Distorted Bass"},
			},
			Variants: tags.Variants{DistortedBass: "Distorted Bass"},
		},
	}
}

// withoutPreferred drops the preferred mappings so every facet falls back to the plain library.
func withoutPreferred() *tags.Rules {
	rules := fixtureRules()
	rules.Genres.MoodMappings = map[string][]string{}
	rules.Genres.TechnicalMappings = map[string][]string{}
	rules.Genres.Variants = tags.Variants{}

	return rules
}

// bright keeps the spectral rule from adding the lo-fi tag.
func bright(bpm float64) analysis.Result {
	return analysis.Result{BPM: analysis.Num(bpm), SpectralCentroid: analysis.Num(3000)}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		rules    *tags.Rules
		result   analysis.Result
		request  string
		expected string
	}{
		{
			name:     "drift bucket with only bpm",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(150)},
			expected: "[Style: Drift Phonk, Cowbell, Fast, 150 BPM, Lo-fi Static]",
		},
		{
			name:     "drift bucket bright mix",
			rules:    fixtureRules(),
			result:   bright(150),
			expected: "[Style: Drift Phonk, Cowbell, Fast, 150 BPM]",
		},
		{
			name:     "memphis bucket",
			rules:    fixtureRules(),
			result:   bright(100),
			expected: "[Style: Memphis Phonk, Cassette, 100 BPM]",
		},
		{
			name:     "house bucket uses first tag only",
			rules:    fixtureRules(),
			result:   bright(128),
			expected: "[Style: Brazilian Phonk, 128 BPM]",
		},
		{
			name:  "dark phonk template with lyrics",
			rules: fixtureRules(),
			result: analysis.Result{
				BPM:    analysis.Num(100),
				Genre:  "Dark Phonk",
				Lyrics: "murder in the night",
				Energy: analysis.Num(80),
			},
			request: "dark",
			expected: "[Style: Dark Phonk, Memphis Samples, Distorted 808, Dark, Sinister, Mysterious, " +
				"Night Drive, Vocal-forward, 100 BPM, Energetic, Hype, Lo-fi Static]",
		},
		{
			name:     "duplicate tag keeps first position",
			rules:    fixtureRules(),
			result:   bright(150),
			request:  "cowbell",
			expected: "[Style: Drift Phonk, Cowbell, Fast, 150 BPM]",
		},
		{
			name:     "aggressive uses preferred mood and distorted variant",
			rules:    fixtureRules(),
			result:   bright(120),
			request:  "aggressive",
			expected: "[Style: Brazilian Phonk, Aggressive, Distorted Bass, 120 BPM]",
		},
		{
			name:     "aggressive falls back to plain library",
			rules:    withoutPreferred(),
			result:   bright(120),
			request:  "AGGRESSIVE",
			expected: "[Style: Brazilian Phonk, Aggressive Plain, Distorted 808, 120 BPM]",
		},
		{
			name:     "dark falls back to dark genre list",
			rules:    withoutPreferred(),
			result:   bright(120),
			request:  "sinister",
			expected: "[Style: Brazilian Phonk, Dark Phonk Plain, Mysterious Plain, 120 BPM]",
		},
		{
			name:     "turkish keywords",
			rules:    fixtureRules(),
			result:   bright(120),
			request:  "karanlık gece",
			expected: "[Style: Brazilian Phonk, Dark, Sinister, Mysterious, Night Drive, 120 BPM]",
		},
		{
			name:     "melancholic and urban fall back to plain moods",
			rules:    fixtureRules(),
			result:   bright(120),
			request:  "lonely city",
			expected: "[Style: Brazilian Phonk, Sad Plain, Street Racing, 120 BPM]",
		},
		{
			name:     "vocal keyword without lyrics",
			rules:    fixtureRules(),
			result:   bright(120),
			request:  "vocal",
			expected: "[Style: Brazilian Phonk, Vocal-forward, 120 BPM]",
		},
		{
			name:     "vocal falls back to plain library",
			rules:    withoutPreferred(),
			result:   bright(120),
			request:  "vocal",
			expected: "[Style: Brazilian Phonk, Rap Vocals, 120 BPM]",
		},
		{
			name:     "whitespace lyrics do not imply vocals",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(120), SpectralCentroid: analysis.Num(3000), Lyrics: "  \n"},
			expected: "[Style: Brazilian Phonk, 120 BPM]",
		},
		{
			name:     "bass perc and lofi facets",
			rules:    fixtureRules(),
			result:   bright(120),
			request:  "808 perc vinyl",
			expected: "[Style: Brazilian Phonk, Heavy Bass, Distorted Bass, Cowbell, Lo-fi Static, Vinyl, 120 BPM]",
		},
		{
			name:     "loudness adds heavy variant after rounding",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(120), SpectralCentroid: analysis.Num(3000), Loudness: analysis.Num(69.5)},
			expected: "[Style: Brazilian Phonk, 120 BPM, Heavy 808]",
		},
		{
			name:     "energy just below threshold",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(120), SpectralCentroid: analysis.Num(3000), Energy: analysis.Num(69.4)},
			expected: "[Style: Brazilian Phonk, 120 BPM]",
		},
		{
			name:     "synonym genre selects template",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(90), SpectralCentroid: analysis.Num(3000), Genre: " RnB "},
			expected: "[Style: Soul, 90 BPM]",
		},
		{
			name:     "unknown genre falls through to bucket",
			rules:    fixtureRules(),
			result:   analysis.Result{BPM: analysis.Num(90), SpectralCentroid: analysis.Num(3000), Genre: "Polka"},
			expected: "[Style: Memphis Phonk, Cassette, 90 BPM]",
		},
		{
			name:     "bpm rounds half up",
			rules:    fixtureRules(),
			result:   bright(145.5),
			expected: "[Style: Drift Phonk, Cowbell, Fast, 146 BPM]",
		},
		{
			name:     "empty rules leave numeric tags only",
			rules:    tags.Empty(),
			result:   analysis.Result{BPM: analysis.Num(128), Energy: analysis.Num(90), Loudness: analysis.Num(90)},
			request:  "dark aggressive night 808 vocal",
			expected: "[Style: 128 BPM]",
		},
		{
			name:     "missing bpm is treated as zero",
			rules:    tags.Empty(),
			result:   analysis.Result{},
			expected: "[Style: 0 BPM]",
		},
		{
			name:     "missing bpm lands in memphis bucket",
			rules:    fixtureRules(),
			result:   analysis.Result{},
			expected: "[Style: Memphis Phonk, Cassette, 0 BPM, Lo-fi Static]",
		},
		{
			name:     "huge bpm keeps its sign",
			rules:    tags.Empty(),
			result:   analysis.Result{BPM: analysis.Num(1e20)},
			expected: "[Style: 100000000000000000000 BPM]",
		},
		{
			name:     "huge negative bpm",
			rules:    tags.Empty(),
			result:   analysis.Result{BPM: analysis.Num(-1e20)},
			expected: "[Style: -100000000000000000000 BPM]",
		},
		{
			name:     "bpm just below a half rounds down",
			rules:    tags.Empty(),
			result:   analysis.Result{BPM: analysis.Num(0.49999999999999994)},
			expected: "[Style: 0 BPM]",
		},
		{
			name:     "small negative bpm prints zero",
			rules:    tags.Empty(),
			result:   analysis.Result{BPM: analysis.Num(-0.3)},
			expected: "[Style: 0 BPM]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEngine(tt.rules).Generate(tt.result, tt.request)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	engine := NewEngine(fixtureRules())
	result := analysis.Result{BPM: analysis.Num(150), Lyrics: "drift through the city", Energy: analysis.Num(75)}

	first := engine.Generate(result, "hype 808")
	for range 10 {
		if got := engine.Generate(result, "hype 808"); got != first {
			t.Fatalf("Expected %s, got %s", first, got)
		}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	engine := NewEngine(fixtureRules())
	result := analysis.Result{BPM: analysis.Num(100), Genre: "Dark Phonk", Lyrics: "murder", Energy: analysis.Num(80)}
	expected := engine.Generate(result, "dark")

	var wg sync.WaitGroup

	errs := make(chan string, 32)

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if got := engine.Generate(result, "dark"); got != expected {
				errs <- got
			}
		}()
	}

	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestTagsHaveNoDuplicates(t *testing.T) {
	rules, errs := tags.LoadDefault()
	if len(errs) != 0 {
		t.Fatalf("Unexpected load errors: %v", errs)
	}

	engine := NewEngine(rules)
	requests := []string{"", "dark aggressive", "808 bass cowbell lofi vinyl", "night drive city street rap", "sad lonely hype"}
	genres := []string{"", "Dark Phonk", "Drift Phonk", "trap", "lofi", "unknown"}

	for _, genre := range genres {
		for _, request := range requests {
			result := analysis.Result{
				BPM:      analysis.Num(150),
				Genre:    genre,
				Lyrics:   "kill the lights",
				Energy:   analysis.Num(90),
				Loudness: analysis.Num(90),
			}

			seen := map[string]bool{}
			for _, tag := range engine.Tags(result, request) {
				if tag == "" {
					t.Errorf("Empty tag for genre %q request %q", genre, request)
				}

				if seen[tag] {
					t.Errorf("Duplicate tag %q for genre %q request %q", tag, genre, request)
				}

				seen[tag] = true
			}
		}
	}
}

func TestGenerateVariations(t *testing.T) {
	engine := NewEngine(fixtureRules())
	result := bright(150)
	expected := engine.Generate(result, "")

	variations := engine.GenerateVariations(result, "", 3)
	if len(variations) != 3 {
		t.Fatalf("Expected 3 variations, got %d", len(variations))
	}

	for i, v := range variations {
		if v != expected {
			t.Errorf("Variation %d: expected %s, got %s", i, expected, v)
		}
	}

	for _, count := range []int{0, -2} {
		got := engine.GenerateVariations(result, "", count)
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil slice for count %d, got %v", count, got)
		}
	}
}

func TestNilRules(t *testing.T) {
	got := NewEngine(nil).Generate(bright(99.5), "dark")
	if got != "[Style: 100 BPM]" {
		t.Errorf("Expected [Style: 100 BPM], got %s", got)
	}
}

func TestExplain(t *testing.T) {
	engine := NewEngine(fixtureRules())

	exp := engine.Explain(analysis.Result{
		BPM:    analysis.Num(100),
		Genre:  "dark phonk",
		Lyrics: "murder in the night",
		Energy: analysis.Num(80),
	}, "dark")

	expectedFired := []string{"template:Dark Phonk", "dark", "night", "vocal", "bpm", "energy", "spectral"}
	if !reflect.DeepEqual(exp.Fired, expectedFired) {
		t.Errorf("Expected fired %v, got %v", expectedFired, exp.Fired)
	}

	if exp.GenreKey != "Dark Phonk" {
		t.Errorf("Expected genre key 'Dark Phonk', got %q", exp.GenreKey)
	}

	if exp.Bucket != "" {
		t.Errorf("Expected no bucket when a template matched, got %q", exp.Bucket)
	}

	exp = engine.Explain(bright(150), "")
	if exp.Bucket != BucketDrift {
		t.Errorf("Expected bucket drift, got %q", exp.Bucket)
	}
}

func TestResolveTagSet(t *testing.T) {
	preferred := map[string][]string{"dark": {"P1", "P2"}, "empty": {}}
	fallback := map[string][]string{"dark": {"F1"}, "empty": {"F2"}, "only": {"F3"}}

	tests := []struct {
		key      string
		expected []string
	}{
		{"dark", []string{"P1", "P2"}},
		{"empty", []string{"F2"}},
		{"only", []string{"F3"}},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := resolveTagSet(tt.key, preferred, fallback)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if got := resolveTagSet("dark", nil, nil); got != nil {
		t.Errorf("Expected nil from nil tables, got %v", got)
	}
}
