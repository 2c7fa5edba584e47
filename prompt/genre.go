// ABOUTME: Genre name normalization onto the canonical genre template keys
// ABOUTME: Maps analyzer labels and common spellings to keys like "Soul_RnB" or "Drum_and_Bass"

package prompt

import (
	"strings"
)

// Canonical keys: maps lowercase spelling -> genre template key
// Includes the snake_case template keys themselves so saved keys round-trip
var genreSynonyms = map[string]string{
	// Rock / metal family
	"rock":         "Rock",
	"metal":        "Metal",
	"j-rock":       "J_Rock",
	"jrock":        "J_Rock",
	"j_rock":       "J_Rock",
	"visual kei":   "J_Rock",
	"blues":        "Blues",
	"country":      "Country_Folk",
	"folk":         "Country_Folk",
	"country_folk": "Country_Folk",

	// Electronic family
	"edm":                 "EDM",
	"techno":              "Techno",
	"ambient":             "Ambient",
	"synthwave":           "Synthwave_Retrowave",
	"retrowave":           "Synthwave_Retrowave",
	"synthwave_retrowave": "Synthwave_Retrowave",
	"drum and bass":       "Drum_and_Bass",
	"drum n bass":         "Drum_and_Bass",
	"dnb":                 "Drum_and_Bass",
	"drum_and_bass":       "Drum_and_Bass",
	"hyperpop":            "Hyperpop",
	"dubstep":             "Dubstep_Riddim",
	"riddim":              "Dubstep_Riddim",
	"dubstep_riddim":      "Dubstep_Riddim",
	"future bass":         "Future_Bass",
	"futurebass":          "Future_Bass",
	"future_bass":         "Future_Bass",
	"hardstyle":           "Hardstyle",

	// Hip hop / phonk family
	"hip-hop":     "Hip-Hop",
	"hip hop":     "Hip-Hop",
	"trap":        "Trap",
	"dark phonk":  "Dark Phonk",
	"drift phonk": "Drift Phonk",
	"lofi":        "LoFi_HipHop",
	"lofi hiphop": "LoFi_HipHop",
	"lofi_hiphop": "LoFi_HipHop",
	"chillhop":    "LoFi_HipHop",

	// Pop family
	"pop":               "Pop",
	"city pop":          "City_Pop_Japan",
	"citypop":           "City_Pop_Japan",
	"city_pop_japan":    "City_Pop_Japan",
	"j-pop":             "J_Pop_Modern",
	"jpop":              "J_Pop_Modern",
	"j_pop_modern":      "J_Pop_Modern",
	"k-pop":             "K_Pop_Performance",
	"kpop":              "K_Pop_Performance",
	"k_pop_performance": "K_Pop_Performance",
	"anime":             "Anime_Epic_Hybrid",
	"anime epic":        "Anime_Epic_Hybrid",
	"anime_epic_hybrid": "Anime_Epic_Hybrid",

	// Soul / groove family
	"soul":            "Soul_RnB",
	"rnb":             "Soul_RnB",
	"r&b":             "Soul_RnB",
	"soul_rnb":        "Soul_RnB",
	"funk":            "Funk_Disco",
	"disco":           "Funk_Disco",
	"funk_disco":      "Funk_Disco",
	"reggaeton":       "Reggaeton_Latin",
	"latin":           "Reggaeton_Latin",
	"reggaeton_latin": "Reggaeton_Latin",
	"afrobeats":       "Afrobeats",
	"afrobeat":        "Afrobeats",
	"bossa nova":      "Bossa_Nova",
	"bossa_nova":      "Bossa_Nova",

	// Jazz / classical family
	"jazz":              "Jazz",
	"classical":         "Classical",
	"baroque":           "Baroque_Classical",
	"baroque classical": "Baroque_Classical",
	"baroque_classical": "Baroque_Classical",
}

// NormalizeGenre maps a genre label onto its canonical template key.
// Matching ignores case and surrounding whitespace. Unknown labels are returned
// unchanged (not trimmed) so they simply miss the template table.
func NormalizeGenre(genre string) string {
	if genre == "" {
		return ""
	}

	if canonical, ok := genreSynonyms[strings.ToLower(strings.TrimSpace(genre))]; ok {
		return canonical
	}

	return genre
}
