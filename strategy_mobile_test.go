package explorer

import "testing"

func TestMobileAppStrategyClassifyScreenTabRoot(t *testing.T) {
	s := NewMobileStrategy()
	elements := []TapPoint{
		{Text: "Feed", X: 40, Y: 800},
		{Text: "Search", X: 140, Y: 800},
		{Text: "Profile", X: 240, Y: 800},
	}
	if got := s.ClassifyScreen(elements, nil); got != ScreenTabRoot {
		t.Fatalf("expected 3 bottom-zone elements to classify as tabRoot, got %v", got)
	}
}

func TestMobileAppStrategyClassifyScreenModal(t *testing.T) {
	s := NewMobileStrategy()
	elements := []TapPoint{
		{Text: "Allow location access?", X: 40, Y: 300},
		{Text: "Cancel", X: 40, Y: 400},
	}
	if got := s.ClassifyScreen(elements, nil); got != ScreenModal {
		t.Fatalf("expected a dismissable low-navigable screen to classify as modal, got %v", got)
	}
}

func TestMobileAppStrategyShouldSkipDestructive(t *testing.T) {
	s := NewMobileStrategy()
	if !s.ShouldSkip("Sign out", DefaultBudget()) {
		t.Error("expected Sign out to be skipped on mobile")
	}
	if s.ShouldSkip("Settings", DefaultBudget()) {
		t.Error("did not expect a benign label to be skipped")
	}
}

func TestMobileAppStrategyIsTerminalAtMaxDepth(t *testing.T) {
	s := NewMobileStrategy()
	budget := DefaultBudget()
	budget.MaxDepth = 2
	if !s.IsTerminal([]TapPoint{{Text: "Feed"}}, 2, budget, ScreenList) {
		t.Error("expected a screen at MaxDepth to be terminal")
	}
	if s.IsTerminal([]TapPoint{{Text: "Feed"}}, 1, budget, ScreenList) {
		t.Error("did not expect a screen below MaxDepth to be terminal")
	}
	if !s.IsTerminal(nil, 0, budget, ScreenList) {
		t.Error("a screen with no elements should always be terminal")
	}
}
