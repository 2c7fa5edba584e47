// ABOUTME: Rule table types for the tag library and the genre prompt library
// ABOUTME: Named variants replace positional lookups and are resolved once at load time

// Package tags loads the two static rule tables that drive prompt synthesis.
// Tables are read once, resolved into a Rules value and never mutated afterwards,
// so a single *Rules can be shared by any number of goroutines.
package tags

// TagLibrary holds phonk-specific tag lists keyed by category.
type TagLibrary struct {
	Genres         map[string][]string `json:"genres"`
	Moods          map[string][]string `json:"moods"`
	TechnicalAudio map[string][]string `json:"technical_audio"`
	VisualVibes    map[string][]string `json:"visual_vibes"`
	Variants       Variants            `json:"variants"`
}

// GenreTemplate is the tag recipe for one canonical genre.
type GenreTemplate struct {
	BaseTags      []string `json:"base_tags"`
	TechnicalTags []string `json:"technical_tags,omitempty"`
}

// GenrePromptLibrary holds genre templates and the preferred mood/technical mappings.
type GenrePromptLibrary struct {
	GenreTemplates    map[string]GenreTemplate `json:"genre_templates"`
	MoodMappings      map[string][]string      `json:"mood_mappings"`
	TechnicalMappings map[string][]string      `json:"technical_mappings"`
	Variants          Variants                 `json:"variants"`
}

// Variants are single tags picked out of the lists for specific rules.
// Empty means "not available"; the rule that wants it emits nothing.
type Variants struct {
	HeavyBass     string `json:"heavy_bass,omitempty"`
	DistortedBass string `json:"distorted_bass,omitempty"`
	LofiFX        string `json:"lofi_fx,omitempty"`
}

// Rules bundles both libraries. Treat it as read-only.
type Rules struct {
	Tags   TagLibrary
	Genres GenrePromptLibrary
}

// Empty returns rules with no entries at all.
// Every lookup against it yields nothing, which leaves only numeric tags in a prompt.
func Empty() *Rules {
	return &Rules{
		Tags:   emptyTagLibrary(),
		Genres: emptyGenreLibrary(),
	}
}

func emptyTagLibrary() TagLibrary {
	return TagLibrary{
		Genres:         map[string][]string{},
		Moods:          map[string][]string{},
		TechnicalAudio: map[string][]string{},
		VisualVibes:    map[string][]string{},
	}
}

func emptyGenreLibrary() GenrePromptLibrary {
	return GenrePromptLibrary{
		GenreTemplates:    map[string]GenreTemplate{},
		MoodMappings:      map[string][]string{},
		TechnicalMappings: map[string][]string{},
	}
}

// resolve fills variants that were not set explicitly from their list positions.
func (l *TagLibrary) resolve() {
	if l.Variants.HeavyBass == "" {
		l.Variants.HeavyBass = at(l.TechnicalAudio["bass"], 0)
	}

	if l.Variants.DistortedBass == "" {
		l.Variants.DistortedBass = at(l.TechnicalAudio["bass"], 1)
	}

	if l.Variants.LofiFX == "" {
		l.Variants.LofiFX = at(l.TechnicalAudio["fx"], 0)
	}
}

func (l *GenrePromptLibrary) resolve() {
	if l.Variants.DistortedBass == "" {
		l.Variants.DistortedBass = at(l.TechnicalMappings["bass_heavy"], 1)
	}
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}

	return ""
}

// Counts reports the number of entries per table, for diagnostics.
func (r *Rules) Counts() (tagCategories, genreTemplates int) {
	tagCategories = len(r.Tags.Genres) + len(r.Tags.Moods) + len(r.Tags.TechnicalAudio) + len(r.Tags.VisualVibes)
	genreTemplates = len(r.Genres.GenreTemplates)

	return tagCategories, genreTemplates
}
