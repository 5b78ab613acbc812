package explorer

import "strings"

// spotlightIndicators are multilingual substrings that mark a spotlight
// or global-search overlay as visible.
var spotlightIndicators = []string{
	"top hit", "meilleur résultat", "siri suggestions", "siri-vorschläge",
	"resultado principal", "migliore corrispondenza",
}

// IsSpotlightVisible reports whether any element substring-matches
// (case-insensitive) a known spotlight indicator.
func IsSpotlightVisible(elements []TapPoint) bool {
	for _, e := range elements {
		lower := strings.ToLower(e.Text)
		for _, ind := range spotlightIndicators {
			if strings.Contains(lower, ind) {
				return true
			}
		}
	}
	return false
}
