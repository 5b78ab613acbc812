package explorer

import "sort"

// Scoring bonuses for ScreenPlanner.BuildPlan. The exact weights are an
// open question per spec §9: the reference implementation calibrates
// them empirically and only the relative ordering is load-bearing.
// A scouted "navigated" result (+5) outweighs chevron context (+3), or
// the short-label (+2) and mid-screen (+1) bonuses together; only an
// unscouted element earning all three (+6) can outrank a navigated
// element that earns none. scoreElement applies -10 to a scouted
// "noChange" result, but BuildPlan drops such elements before scoring.
const (
	scoreChevronContext = 3.0
	scoreShortLabel     = 2.0
	scoreMidScreen      = 1.0
	scoreScoutNavigated = 5.0
	scoreScoutNoChange  = -10.0

	shortLabelMaxLen = 20
	midScreenLow     = 0.3
	midScreenHigh    = 0.7
)

// BuildPlan produces the ranked list of navigation elements a dive
// phase should try, per spec §4.4. Elements already visited are
// dropped; only navigation-role elements are kept; scout results bias
// the score toward a confirmed-navigating element (+5), while a
// confirmed-no-op element is dropped outright, as
// ScoutPhase.RankForDive also excludes it.
func BuildPlan(classified []ClassifiedElement, visited map[string]struct{}, scoutResults map[string]ScoutOutcome, screenHeight float64) []RankedElement {
	var ranked []RankedElement

	for _, ce := range classified {
		if ce.Role != RoleNavigation {
			continue
		}
		if _, isVisited := visited[ce.Point.Text]; isVisited {
			continue
		}
		if outcome, scouted := scoutResults[ce.Point.Text]; scouted && outcome == ScoutNoChange {
			continue
		}

		score, reason := scoreElement(ce, scoutResults, screenHeight)
		ranked = append(ranked, RankedElement{Point: ce.Point, Score: score, Reason: reason})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Point.Y < ranked[j].Point.Y
	})
	return ranked
}

func scoreElement(ce ClassifiedElement, scoutResults map[string]ScoutOutcome, screenHeight float64) (float64, string) {
	var score float64
	reason := ""

	add := func(delta float64, why string) {
		score += delta
		if reason != "" {
			reason += ", "
		}
		reason += why
	}

	if ce.HasChevronContext {
		add(scoreChevronContext, "chevron")
	}
	if len(ce.Point.Text) <= shortLabelMaxLen && !containsSpace(ce.Point.Text) {
		add(scoreShortLabel, "short label")
	}
	if screenHeight > 0 {
		frac := ce.Point.Y / screenHeight
		if frac >= midScreenLow && frac <= midScreenHigh {
			add(scoreMidScreen, "mid-screen")
		}
	}
	if outcome, ok := scoutResults[ce.Point.Text]; ok {
		if outcome == ScoutNavigated {
			add(scoreScoutNavigated, "scouted:navigated")
		} else {
			add(scoreScoutNoChange, "scouted:noChange")
		}
	}
	if reason == "" {
		reason = "baseline"
	}
	return score, reason
}

func containsSpace(s string) bool {
	for _, r := range s {
		if r == ' ' {
			return true
		}
	}
	return false
}

// ScoutPhase implements the tab-root-only probing policy of spec §4.4.
type ScoutPhase struct{}

// ShouldScout reports whether scouting applies to this node: only
// tab-root screens at shallow depth with enough candidate navigables
// are worth probing; list/settings/detail/modal screens rely on their
// chevron affordances being informative enough already.
func (ScoutPhase) ShouldScout(screenType ScreenType, depth int, navigationCount int) bool {
	return screenType == ScreenTabRoot && depth < 2 && navigationCount >= 4
}

// NextScoutTarget returns the first navigation element not yet present
// in scouted, or nil if every navigation element has been probed.
func (ScoutPhase) NextScoutTarget(classified []ClassifiedElement, scouted map[string]ScoutOutcome) *TapPoint {
	for _, ce := range classified {
		if ce.Role != RoleNavigation {
			continue
		}
		if _, done := scouted[ce.Point.Text]; done {
			continue
		}
		p := ce.Point
		return &p
	}
	return nil
}

// RankForDive orders elements for the dive phase once scouting has
// completed: scouted "navigated" elements first (in scout order),
// followed by unscouted elements; "noChange" elements are excluded.
func (ScoutPhase) RankForDive(scoutResults map[string]ScoutOutcome, classified []ClassifiedElement) []TapPoint {
	var navigated, unscouted []TapPoint
	for _, ce := range classified {
		if ce.Role != RoleNavigation {
			continue
		}
		outcome, scouted := scoutResults[ce.Point.Text]
		switch {
		case scouted && outcome == ScoutNavigated:
			navigated = append(navigated, ce.Point)
		case !scouted:
			unscouted = append(unscouted, ce.Point)
		}
	}
	return append(navigated, unscouted...)
}
