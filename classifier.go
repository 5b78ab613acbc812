package explorer

import (
	"regexp"
	"strings"

	"github.com/mirroir/uiexplorer/utils"
)

// rowYTolerance is the vertical distance within which two elements are
// considered to share a visual row, mirroring the 3x3 neighbourhood
// window the ancestor Sobel pass used for spatial grouping, narrowed
// here to one axis.
const rowYTolerance = 15.0

var (
	chevronVariants = map[string]struct{}{
		">": {}, "›": {}, "❯": {},
	}

	// destructivePattern matches the localised set of irreversible or
	// sensitive actions called out in spec §4.2. Case-insensitive.
	destructivePattern = regexp.MustCompile(`(?i)^(sign out|delete.*|supprimer|eliminar|d[ée]connexion|airplane mode|mode avion|se d[ée]connecter|cerrar sesi[oó]n)$`)

	// valuePattern matches a quantity-with-unit or percentage.
	valuePattern = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*((gb|mb|kb|tb|km)\b|%)`)

	// literalStatePattern matches bare state literals.
	literalStatePattern = regexp.MustCompile(`(?i)^(on|off|connected|auto|none)$`)

	// sentenceConjunctionPattern matches a comma followed by a
	// conjunction in English or French, a loose "sentence-like" signal.
	sentenceConjunctionPattern = regexp.MustCompile(`(?i),\s*(and|or|but|et|ou|mais)\b`)

	helpLinkPattern = regexp.MustCompile(`(?i)^(learn more|en savoir plus|more info|plus d'infos)$`)

	// stateIndicatorLiterals flags a row as describing a toggle/state
	// when one of its info elements is exactly one of these.
	stateIndicatorLiterals = map[string]struct{}{
		"on": {}, "off": {}, "connected": {}, "disconnected": {}, "auto": {},
	}
)

const longTextLen = 50

// ClassifyElements assigns each TapPoint a Role, preserving input order.
// The row-grouping and per-row cross-references (state-indicator and
// chevron propagation) require two passes: first classify every element
// independently, then let each row's independent verdicts influence its
// siblings, exactly as spec §4.2 steps 6-7 describe.
func ClassifyElements(elements []TapPoint) []ClassifiedElement {
	out := make([]ClassifiedElement, len(elements))
	lengthBasedInfo := make([]bool, len(elements))
	for i, e := range elements {
		role, lenBased := classifySingle(e)
		out[i] = ClassifiedElement{Point: e, Role: role, HasChevronContext: false}
		lengthBasedInfo[i] = lenBased
	}

	rows := groupRows(elements)
	for _, row := range rows {
		applyChevronOverride(out, row, lengthBasedInfo)
	}
	for _, row := range rows {
		applyRowContext(out, row)
	}
	return out
}

// groupRows partitions element indices into rows, one index list per
// row (|y_a - y_b| <= rowYTolerance), single-linkage.
func groupRows(elements []TapPoint) [][]int {
	n := len(elements)
	assigned := make([]bool, n)
	var rows [][]int

	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		row := []int{i}
		assigned[i] = true
		for j := i + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			for _, k := range row {
				if utils.Abs(elements[k].Y-elements[j].Y) <= rowYTolerance {
					row = append(row, j)
					assigned[j] = true
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// classifySingle returns the role an element would have in isolation,
// plus whether that role was "info" purely because of length/sentence
// shape rather than a value/state pattern. The chevron-context edge
// case in spec §4.2 only reverts the former.
func classifySingle(e TapPoint) (Role, bool) {
	text := strings.TrimSpace(e.Text)

	if len([]rune(text)) < 3 || isAllPunctuation(text) {
		return RoleDecoration, false
	}
	if _, ok := chevronVariants[text]; ok {
		return RoleDecoration, false
	}
	if destructivePattern.MatchString(text) {
		return RoleDestructive, false
	}
	if valuePattern.MatchString(text) || literalStatePattern.MatchString(text) {
		return RoleInfo, false
	}
	if len(text) > longTextLen || sentenceConjunctionPattern.MatchString(text) || helpLinkPattern.MatchString(text) {
		return RoleInfo, true
	}
	return RoleNavigation, false
}

// applyChevronOverride reverts a length-based "info" verdict back to
// navigation when the same row carries a decoration chevron: chevron
// context always wins over the length heuristic (spec §4.2 edge case).
func applyChevronOverride(out []ClassifiedElement, row []int, lengthBasedInfo []bool) {
	hasChevron := false
	for _, idx := range row {
		if out[idx].Role == RoleDecoration {
			if _, ok := chevronVariants[out[idx].Point.Text]; ok {
				hasChevron = true
				break
			}
		}
	}
	if !hasChevron {
		return
	}
	for _, idx := range row {
		if out[idx].Role == RoleInfo && lengthBasedInfo[idx] {
			out[idx].Role = RoleNavigation
			out[idx].HasChevronContext = true
		}
	}
}

// applyRowContext implements spec §4.2 steps 6-7: a row containing an
// info element carrying a state-indicator literal promotes any
// navigation-labelled sibling in that row to stateChange; a row
// containing a decoration chevron promotes navigation siblings to
// navigation-with-chevron-context. Edge case: chevron context always
// wins over the length-based info demotion, so it is applied after the
// state-indicator pass and only to elements still labelled navigation.
func applyRowContext(out []ClassifiedElement, row []int) {
	hasStateIndicator := false
	hasChevron := false
	for _, idx := range row {
		ce := out[idx]
		if ce.Role == RoleInfo {
			if _, ok := stateIndicatorLiterals[normaliseText(ce.Point.Text)]; ok {
				hasStateIndicator = true
			}
		}
		if ce.Role == RoleDecoration {
			if _, ok := chevronVariants[ce.Point.Text]; ok {
				hasChevron = true
			}
		}
	}

	for _, idx := range row {
		switch out[idx].Role {
		case RoleNavigation:
			if hasStateIndicator {
				out[idx].Role = RoleStateChange
			} else if hasChevron {
				out[idx].HasChevronContext = true
			}
		}
	}
}

func isAllPunctuation(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	for _, r := range trimmed {
		if isAlnumRune(toLowerRune(r)) {
			return false
		}
	}
	return true
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}
