package explorer

import "testing"

func roleOf(t *testing.T, out []ClassifiedElement, text string) ClassifiedElement {
	t.Helper()
	for _, ce := range out {
		if ce.Point.Text == text {
			return ce
		}
	}
	t.Fatalf("no element with text %q in classification output", text)
	return ClassifiedElement{}
}

func TestClassifyElementsBasicRoles(t *testing.T) {
	elements := []TapPoint{
		{Text: "Settings", X: 10, Y: 10},
		{Text: "87%", X: 200, Y: 10},
		{Text: "Sign out", X: 10, Y: 100},
		{Text: ">", X: 200, Y: 200},
	}
	out := ClassifyElements(elements)

	if roleOf(t, out, "Settings").Role != RoleNavigation {
		t.Error("plain short label should classify as navigation")
	}
	if roleOf(t, out, "87%").Role != RoleInfo {
		t.Error("percentage value should classify as info")
	}
	if roleOf(t, out, "Sign out").Role != RoleDestructive {
		t.Error("sign out should classify as destructive")
	}
	if roleOf(t, out, ">").Role != RoleDecoration {
		t.Error("bare chevron should classify as decoration")
	}
}

func TestClassifyElementsStateIndicatorPromotesRowSibling(t *testing.T) {
	elements := []TapPoint{
		{Text: "Wi-Fi", X: 10, Y: 50},
		{Text: "Connected", X: 200, Y: 52},
	}
	out := ClassifyElements(elements)
	if roleOf(t, out, "Wi-Fi").Role != RoleStateChange {
		t.Errorf("expected stateChange promotion from row-mate state literal, got %v", roleOf(t, out, "Wi-Fi").Role)
	}
}

func TestClassifyElementsChevronContextFlag(t *testing.T) {
	elements := []TapPoint{
		{Text: "Notifications", X: 10, Y: 50},
		{Text: ">", X: 200, Y: 52},
	}
	out := ClassifyElements(elements)
	row := roleOf(t, out, "Notifications")
	if row.Role != RoleNavigation || !row.HasChevronContext {
		t.Errorf("expected navigation+chevron context, got role=%v chevron=%v", row.Role, row.HasChevronContext)
	}
}

// TestClassifyElementsChevronOverridesLengthBasedInfo covers spec's
// explicit edge case: an element long/sentence-like enough to classify
// as info in isolation must revert to navigation when its row carries a
// chevron, since the chevron is strong evidence it's actually a
// disclosure row.
func TestClassifyElementsChevronOverridesLengthBasedInfo(t *testing.T) {
	longLabel := "Manage your notification preferences and quiet hours"
	elements := []TapPoint{
		{Text: longLabel, X: 10, Y: 50},
		{Text: ">", X: 200, Y: 52},
	}
	out := ClassifyElements(elements)
	ce := roleOf(t, out, longLabel)
	if ce.Role != RoleNavigation {
		t.Fatalf("expected chevron to override length-based info demotion, got role %v", ce.Role)
	}
	if !ce.HasChevronContext {
		t.Fatal("expected HasChevronContext to be set after override")
	}
}

// TestClassifyElementsChevronDoesNotOverridePatternBasedInfo ensures the
// override is scoped to length-based demotions only: a value/state
// pattern match stays info even with a chevron in the same row.
func TestClassifyElementsChevronDoesNotOverridePatternBasedInfo(t *testing.T) {
	elements := []TapPoint{
		{Text: "64 GB", X: 10, Y: 50},
		{Text: ">", X: 200, Y: 52},
	}
	out := ClassifyElements(elements)
	if roleOf(t, out, "64 GB").Role != RoleInfo {
		t.Fatal("pattern-based info should not be reverted by chevron override")
	}
}
