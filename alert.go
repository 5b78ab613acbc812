package explorer

import "regexp"

// alertMaxElements bounds how busy a screen can be and still be
// considered an alert/permission overlay (spec §4.10: "never fires on
// screens with > ~10 elements").
const alertMaxElements = 10

// alertTitlePattern recognises common system-prompt phrasings.
var alertTitlePattern = regexp.MustCompile(`(?i)(would like to|enjoying the app|allow .* to track|wants to)`)

// dismissPriority orders candidate dismiss buttons; lower is safer/
// higher priority, per spec §4.10.
var dismissPriority = []string{
	"don't allow", "ask app not to track", "cancel", "not now",
	"dismiss", "close", "no", "decline", "ok", "allow",
}

// Alert is the result of a positive AlertDetector match.
type Alert struct {
	AlertType     string
	DismissTarget TapPoint
}

// DetectAlert recognises an overlay screen: a title-pattern element
// plus at least one button from the dismiss-priority list, grounded on
// sobel.go's single-pass threshold-predicate style generalized from
// pixel magnitudes to text patterns. Returns nil when no alert is
// present.
func DetectAlert(elements []TapPoint) *Alert {
	if len(elements) > alertMaxElements {
		return nil
	}

	hasTitle := false
	for _, e := range elements {
		if alertTitlePattern.MatchString(e.Text) {
			hasTitle = true
			break
		}
	}
	if !hasTitle {
		return nil
	}

	target, ok := bestDismissTarget(elements)
	if !ok {
		return nil
	}
	return &Alert{AlertType: "system_prompt", DismissTarget: target}
}

// bestDismissTarget returns the matching element with the lowest
// (highest-priority) index in dismissPriority. Spec testable property 6
// requires this never returns a target whose priority number is not
// strictly lower than every other matching candidate on screen.
func bestDismissTarget(elements []TapPoint) (TapPoint, bool) {
	bestIdx := -1
	var best TapPoint
	for _, e := range elements {
		norm := normaliseText(e.Text)
		for i, p := range dismissPriority {
			if normaliseText(p) == norm {
				if bestIdx == -1 || i < bestIdx {
					bestIdx = i
					best = e
				}
				break
			}
		}
	}
	return best, bestIdx != -1
}
