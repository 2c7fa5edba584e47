// ABOUTME: Keyword groups that trigger mood, vibe, vocal and facet rules
// ABOUTME: Matches Turkish and English words as substrings of the lowercased request and lyrics

package prompt

import "strings"

// keywordGroup fires when any of its words appears as a substring of the search text.
type keywordGroup []string

func (g keywordGroup) matches(text string) bool {
	for _, word := range g {
		if strings.Contains(text, word) {
			return true
		}
	}

	return false
}

// Turkish and English trigger words, lowercase.
var (
	aggressiveWords  = keywordGroup{"sert", "agresif", "aggressive", "hardcore"}
	darkWords        = keywordGroup{"karanlık", "dark", "sinister", "murder", "kill"}
	energeticWords   = keywordGroup{"enerjik", "energetic", "hype", "power"}
	melancholicWords = keywordGroup{"hüzünlü", "melancholic", "sad", "depressing", "lonely"}
	nightWords       = keywordGroup{"gece", "night", "araba", "car", "drive", "drift"}
	urbanWords       = keywordGroup{"şehir", "urban", "street", "racing", "city"}
	vocalWords       = keywordGroup{"vokal", "vocal", "rap", "şarkı", "söyle"}
	bassWords        = keywordGroup{"bas", "bass", "808"}
	percWords        = keywordGroup{"cowbell", "zil", "perc"}
	lofiWords        = keywordGroup{"lo-fi", "lofi", "vinyl", "static"}
)

// searchText is the lowercase request and lyrics joined by a space.
func searchText(request, lyrics string) string {
	return strings.ToLower(request + " " + lyrics)
}
