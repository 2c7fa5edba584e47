// ABOUTME: Rule-based synthesis of "[Style: ...]" prompts from an analysis record and a request
// ABOUTME: Merges genre, keyword, vocal, facet and numeric tags in firing order without duplicates

// Package prompt turns analysis records into style-tag prompts.
// The engine is deterministic and holds no mutable state, so one Engine can
// serve concurrent callers.
package prompt

import (
	"strconv"
	"strings"

	"phonk-prompter/analysis"
	"phonk-prompter/tags"
)

// Numeric thresholds, compared after rounding.
const (
	energeticAtLeast = 70
	loudAtLeast      = 70
	lofiBelowHz      = 2000
)

// Engine generates prompts from a fixed set of rules.
type Engine struct {
	rules *tags.Rules
}

// NewEngine creates an engine over the given rules. Nil rules behave as empty tables.
func NewEngine(rules *tags.Rules) *Engine {
	if rules == nil {
		rules = tags.Empty()
	}

	return &Engine{rules: rules}
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() *tags.Rules {
	return e.rules
}

// Explanation is the ordered tag list along with the rules that produced it.
type Explanation struct {
	Tags     []string
	Fired    []string // rule names in firing order, e.g. "template:Dark Phonk", "dark", "bpm"
	GenreKey string   // normalized genre, "" when the genre was empty
	Bucket   string   // BPM bucket used, "" when a template matched
}

// Generate returns the style prompt for a record and an optional request.
func (e *Engine) Generate(result analysis.Result, request string) string {
	return Format(e.Tags(result, request))
}

// Tags returns the de-duplicated tags in firing order.
func (e *Engine) Tags(result analysis.Result, request string) []string {
	return e.Explain(result, request).Tags
}

// GenerateVariations returns count copies of the prompt. The engine is
// deterministic, so every copy is identical. count <= 0 yields an empty slice.
func (e *Engine) GenerateVariations(result analysis.Result, request string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	prompt := e.Generate(result, request)

	variations := make([]string, count)
	for i := range variations {
		variations[i] = prompt
	}

	return variations
}

// Format wraps tags as "[Style: a, b, c]".
func Format(list []string) string {
	return "[Style: " + strings.Join(list, ", ") + "]"
}

// Explain runs every rule and records which ones fired.
func (e *Engine) Explain(result analysis.Result, request string) Explanation {
	lib := &e.rules.Tags
	genres := &e.rules.Genres

	bpm := round(result.BPM.Float())
	energy := round(result.Energy.Float())
	loudness := round(result.Loudness.Float())
	spectral := round(result.SpectralCentroid.Float())

	out := newTagList()
	exp := Explanation{GenreKey: NormalizeGenre(result.Genre)}

	fire := func(name string, list ...string) {
		exp.Fired = append(exp.Fired, name)
		out.add(list...)
	}

	// Genre template, else the BPM bucket
	if template, ok := genres.GenreTemplates[exp.GenreKey]; ok {
		fire("template:"+exp.GenreKey, template.BaseTags...)
		out.add(template.TechnicalTags...)
	} else {
		exp.Bucket = BPMBucket(bpm)

		switch exp.Bucket {
		case BucketDrift, BucketMemphis:
			fire("bucket:"+exp.Bucket, lib.Genres[exp.Bucket]...)
		default:
			fire("bucket:"+exp.Bucket, first(lib.Genres[BucketHouse])...)
		}
	}

	text := searchText(request, result.Lyrics)

	// Moods and visual vibes
	if aggressiveWords.matches(text) {
		fire("aggressive", resolveTagSet("aggressive", genres.MoodMappings, lib.Moods)...)
		out.add(firstNonEmpty(genres.Variants.DistortedBass, lib.Variants.DistortedBass))
	}

	if darkWords.matches(text) {
		fire("dark", resolveTagSet("dark", genres.MoodMappings, lib.Genres)...)
		out.add(resolveTagSet("mysterious", genres.MoodMappings, lib.Moods)...)
	}

	if energeticWords.matches(text) {
		fire("energetic", resolveTagSet("energetic", genres.MoodMappings, lib.Moods)...)
	}

	if melancholicWords.matches(text) {
		fire("melancholic", resolveTagSet("melancholic", genres.MoodMappings, lib.Moods)...)
	}

	if nightWords.matches(text) {
		fire("night", lib.VisualVibes["night"]...)
	}

	if urbanWords.matches(text) {
		fire("urban", lib.VisualVibes["urban"]...)
	}

	// Lyrics imply vocals regardless of the request
	if strings.TrimSpace(result.Lyrics) != "" || vocalWords.matches(text) {
		fire("vocal", resolveFacet(genres.TechnicalMappings, "vocal_forward", lib.TechnicalAudio, "vocal")...)
	}

	// Independent facets
	if bassWords.matches(text) {
		fire("bass", resolveFacet(genres.TechnicalMappings, "bass_heavy", lib.TechnicalAudio, "bass")...)
	}

	if percWords.matches(text) {
		fire("perc", lib.TechnicalAudio["perc"]...)
	}

	if lofiWords.matches(text) {
		fire("lofi", lib.TechnicalAudio["fx"]...)
	}

	// Numeric tags
	fire("bpm", strconv.FormatFloat(bpm, 'f', -1, 64)+" BPM")

	if energy >= energeticAtLeast {
		fire("energy", lib.Moods["energetic"]...)
	}

	if loudness >= loudAtLeast {
		fire("loudness", lib.Variants.HeavyBass)
	}

	if spectral < lofiBelowHz {
		fire("spectral", lib.Variants.LofiFX)
	}

	exp.Tags = out.tags

	return exp
}

// resolveTagSet returns preferred[key] when it has entries, otherwise fallback[key].
func resolveTagSet(key string, preferred, fallback map[string][]string) []string {
	return resolveFacet(preferred, key, fallback, key)
}

// resolveFacet is resolveTagSet for facets whose two tables use different key names.
func resolveFacet(preferred map[string][]string, preferredKey string, fallback map[string][]string, fallbackKey string) []string {
	if list := preferred[preferredKey]; len(list) > 0 {
		return list
	}

	return fallback[fallbackKey]
}

func first(list []string) []string {
	if len(list) == 0 {
		return nil
	}

	return list[:1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// tagList keeps insertion order and drops repeats and empty tags.
type tagList struct {
	tags []string
	seen map[string]struct{}
}

func newTagList() *tagList {
	return &tagList{tags: []string{}, seen: make(map[string]struct{})}
}

func (l *tagList) add(list ...string) {
	for _, tag := range list {
		if tag == "" {
			continue
		}

		if _, dup := l.seen[tag]; dup {
			continue
		}

		l.seen[tag] = struct{}{}
		l.tags = append(l.tags, tag)
	}
}
