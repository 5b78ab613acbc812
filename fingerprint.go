package explorer

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// minFingerprintTextLen is the shortest normalised element text that
// contributes to a fingerprint; shorter runs are almost always
// decoration (chevrons, dots, counters) and would make otherwise
// distinct screens collide.
const minFingerprintTextLen = 3

// iconBucketSize buckets icon positions onto a coarse grid so that
// sub-pixel OCR jitter between two captures of the same screen doesn't
// change the fingerprint.
const iconBucketSize = 50.0

// ComputeFingerprint derives a deterministic structural hash of a screen
// from its element texts and icon positions. Two calls with the same
// (possibly reordered) inputs always yield the same fingerprint: the
// flat index-math bookkeeping the ancestor carver used for pixel offsets
// here becomes bucket-id bookkeeping for icons, and the normalised text
// set is sorted before hashing so row order never matters.
func ComputeFingerprint(elements []TapPoint, icons []Icon) ScreenFingerprint {
	texts := normalisedTexts(elements)
	sort.Strings(texts)

	buckets := make([]string, 0, len(icons))
	for _, ic := range icons {
		bx := int(ic.X / iconBucketSize)
		by := int(ic.Y / iconBucketSize)
		buckets = append(buckets, strconv.Itoa(bx)+":"+strconv.Itoa(by))
	}
	sort.Strings(buckets)

	var b strings.Builder
	b.WriteString(strings.Join(texts, "|"))
	b.WriteByte('#')
	b.WriteString(strings.Join(buckets, "|"))

	h := fnv.New64a()
	_, _ = h.Write([]byte(b.String()))
	return ScreenFingerprint(strconv.FormatUint(h.Sum64(), 16))
}

// normalisedTexts lowercases, strips punctuation and filters out any
// element text shorter than minFingerprintTextLen, matching the text set
// used for Jaccard similarity (see similarity.go) so the two notions of
// "same screen" stay consistent.
func normalisedTexts(elements []TapPoint) []string {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		n := normaliseText(e.Text)
		if len(n) >= minFingerprintTextLen {
			out = append(out, n)
		}
	}
	return out
}

// normaliseText lowercases and strips punctuation/whitespace-only noise
// for use in fingerprints and similarity comparisons.
func normaliseText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if isAlnumRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlnumRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return false
	}
}
