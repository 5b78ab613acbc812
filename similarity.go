package explorer

// jaccardThreshold is the similarity at or above which two captures are
// considered the same screen for duplicate/revisit purposes (§4.5).
const jaccardThreshold = 0.80

// jaccardSimilarity computes |a ∩ b| / |a ∪ b| over the normalised,
// length-filtered text multisets (treated as sets: duplicate texts on a
// screen don't inflate the denominator).
func jaccardSimilarity(a, b []TapPoint) float64 {
	setA := textSet(a)
	setB := textSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	intersection := 0
	union := make(map[string]struct{}, len(setA)+len(setB))
	for t := range setA {
		union[t] = struct{}{}
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	for t := range setB {
		union[t] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

func textSet(elements []TapPoint) map[string]struct{} {
	set := make(map[string]struct{}, len(elements))
	for _, t := range normalisedTexts(elements) {
		set[t] = struct{}{}
	}
	return set
}
