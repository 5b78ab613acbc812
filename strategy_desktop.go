package explorer

// sidebarXThreshold is the X coordinate below which an element is
// considered part of a desktop sidebar, per spec §4.6.
const sidebarXThreshold = 200.0

var desktopSkipPatterns = []string{
	"quit", "force quit", "format", "uninstall",
	"sign out", "delete account", "erase disk",
}

// DesktopAppStrategy implements PlatformStrategy for sidebar/window
// style macOS-like apps (spec §4.6).
type DesktopAppStrategy struct {
	ScreenHeight float64
}

// NewDesktopStrategy returns a DesktopAppStrategy sized for a typical
// desktop window.
func NewDesktopStrategy() *DesktopAppStrategy {
	return &DesktopAppStrategy{ScreenHeight: 900}
}

func (s *DesktopAppStrategy) ClassifyScreen(elements []TapPoint, hints []string) ScreenType {
	sidebarCount := 0
	for _, e := range elements {
		if e.X < sidebarXThreshold {
			sidebarCount++
		}
	}
	if sidebarCount >= 3 {
		return ScreenSettings
	}

	hasCancel, hasOK := false, false
	for _, e := range elements {
		switch normaliseText(e.Text) {
		case "cancel":
			hasCancel = true
		case "ok":
			hasOK = true
		}
	}
	if hasCancel && hasOK && len(elements) <= 8 {
		return ScreenModal
	}

	navigables := countNavigables(elements)
	if hasBackHint(hints) && navigables <= 4 {
		return ScreenDetail
	}
	if navigables > 4 && hasBackHint(hints) {
		return ScreenList
	}
	return ScreenSettings
}

func (s *DesktopAppStrategy) RankElements(elements []TapPoint, icons []Icon, visited map[string]struct{}, depth int, screenType ScreenType) []TapPoint {
	classified := ClassifyElements(elements)
	plan := BuildPlan(classified, visited, nil, s.ScreenHeight)
	out := make([]TapPoint, len(plan))
	for i, re := range plan {
		out[i] = re.Point
	}
	return out
}

func (s *DesktopAppStrategy) BacktrackMethod(hints []string, depth int) BacktrackMethod {
	if depth >= 1 {
		return BacktrackPressBack // translated to Cmd+[ by the explorer
	}
	return BacktrackNone
}

func (s *DesktopAppStrategy) ShouldSkip(text string, budget ExplorationBudget) bool {
	return matchesSkipPattern(text, desktopSkipPatterns) || matchesSkipPattern(text, budget.SkipPatterns)
}

func (s *DesktopAppStrategy) IsTerminal(elements []TapPoint, depth int, budget ExplorationBudget, screenType ScreenType) bool {
	if budget.MaxDepth > 0 && depth >= budget.MaxDepth {
		return true
	}
	return len(elements) == 0
}

func (s *DesktopAppStrategy) ExtractFingerprint(elements []TapPoint, icons []Icon) ScreenFingerprint {
	return ComputeFingerprint(elements, icons)
}
