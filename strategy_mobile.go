package explorer

// tabBarZoneFraction is the fractional Y position above which an
// element is considered part of the bottom tab bar, matching
// component.go's ZoneTabBar cutoff.
const tabBarZoneFraction = 0.88

// mobileSkipPatterns are destructive/ad/purchase literals the mobile
// strategy refuses to tap during unattended exploration.
var mobileSkipPatterns = []string{
	"sign out", "delete account", "supprimer le compte", "eliminar cuenta",
	"déconnexion", "airplane mode", "mode avion",
	"subscribe", "upgrade to pro", "buy now", "restore purchase",
	"rate us", "leave a review",
}

// MobileAppStrategy implements PlatformStrategy for iOS/Android-style
// single-window touch apps (spec §4.6).
type MobileAppStrategy struct {
	ScreenHeight float64
}

// NewMobileStrategy returns a MobileAppStrategy sized for a typical
// portrait phone screen; ScreenHeight may be overridden per capture via
// the field.
func NewMobileStrategy() *MobileAppStrategy {
	return &MobileAppStrategy{ScreenHeight: 844}
}

func (s *MobileAppStrategy) ClassifyScreen(elements []TapPoint, hints []string) ScreenType {
	height := s.ScreenHeight
	tabBarCount := 0
	for _, e := range elements {
		if height > 0 && e.Y/height > tabBarZoneFraction {
			tabBarCount++
		}
	}
	navigables := countNavigables(elements)

	if tabBarCount >= 3 {
		return ScreenTabRoot
	}
	if navigables <= 3 && hasDismissAffordance(elements) {
		return ScreenModal
	}
	if hasBackHint(hints) && navigables <= 4 {
		return ScreenDetail
	}
	if navigables > 4 && hasBackHint(hints) {
		return ScreenList
	}
	return ScreenSettings
}

func (s *MobileAppStrategy) RankElements(elements []TapPoint, icons []Icon, visited map[string]struct{}, depth int, screenType ScreenType) []TapPoint {
	classified := ClassifyElements(elements)
	plan := BuildPlan(classified, visited, nil, s.ScreenHeight)
	out := make([]TapPoint, len(plan))
	for i, re := range plan {
		out[i] = re.Point
	}
	return out
}

func (s *MobileAppStrategy) BacktrackMethod(hints []string, depth int) BacktrackMethod {
	if depth >= 1 {
		return BacktrackPressBack
	}
	return BacktrackNone
}

func (s *MobileAppStrategy) ShouldSkip(text string, budget ExplorationBudget) bool {
	return matchesSkipPattern(text, mobileSkipPatterns) || matchesSkipPattern(text, budget.SkipPatterns)
}

func (s *MobileAppStrategy) IsTerminal(elements []TapPoint, depth int, budget ExplorationBudget, screenType ScreenType) bool {
	if budget.MaxDepth > 0 && depth >= budget.MaxDepth {
		return true
	}
	return len(elements) == 0
}

func (s *MobileAppStrategy) ExtractFingerprint(elements []TapPoint, icons []Icon) ScreenFingerprint {
	return ComputeFingerprint(elements, icons)
}

func matchesSkipPattern(text string, patterns []string) bool {
	norm := normaliseText(text)
	for _, p := range patterns {
		if normaliseText(p) == norm {
			return true
		}
	}
	return false
}
