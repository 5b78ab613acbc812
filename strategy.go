package explorer

// PlatformStrategy is the policy capability-set that parameterizes
// classification and backtracking for mobile vs desktop targets (spec
// §4.6). It is a plain interface rather than a class hierarchy,
// generalizing the ancestor Processor's ShapeType-driven
// shrinkFn/enlargeFn function-variable dispatch (processor.go) from "two
// resize axes" to "two platform capability sets": the explorer is
// constructed with one implementation and type-switches on it only to
// read its ScreenHeight (strategyScreenHeight in dfs.go and bfs.go).
type PlatformStrategy interface {
	ClassifyScreen(elements []TapPoint, hints []string) ScreenType
	RankElements(elements []TapPoint, icons []Icon, visited map[string]struct{}, depth int, screenType ScreenType) []TapPoint
	BacktrackMethod(hints []string, depth int) BacktrackMethod
	ShouldSkip(text string, budget ExplorationBudget) bool
	IsTerminal(elements []TapPoint, depth int, budget ExplorationBudget, screenType ScreenType) bool
	ExtractFingerprint(elements []TapPoint, icons []Icon) ScreenFingerprint
}

// hasBackHint reports whether hints mention a back-navigation
// affordance, used by both strategies to recognise list/detail screens.
func hasBackHint(hints []string) bool {
	for _, h := range hints {
		switch h {
		case "back_button", "has_back", "nav_back":
			return true
		}
	}
	return false
}

// countNavigables classifies elements and counts how many are
// navigation- or stateChange-role, the shared building block for tabRoot/list/settings
// heuristics in both strategies.
func countNavigables(elements []TapPoint) int {
	n := 0
	for _, ce := range ClassifyElements(elements) {
		if ce.Role == RoleNavigation || ce.Role == RoleStateChange {
			n++
		}
	}
	return n
}

func hasDismissAffordance(elements []TapPoint) bool {
	for _, e := range elements {
		switch normaliseText(e.Text) {
		case "done", "cancel", "x", "close":
			return true
		}
	}
	return false
}
