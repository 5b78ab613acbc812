package explorer

import "testing"

func TestNavigationGraphStartCreatesRoot(t *testing.T) {
	g := NewNavigationGraph()
	if g.Started() {
		t.Fatal("a fresh graph should not be started")
	}
	elements := []TapPoint{{Text: "Feed"}, {Text: "Settings"}}
	fp := g.Start(elements, nil, nil, "", ScreenTabRoot)

	if !g.Started() || g.Root() != fp || g.Current() != fp {
		t.Fatal("Start should mark the graph started and set root/current to the new node")
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Fatalf("expected 1 node and 0 edges after Start, got %d/%d", g.NodeCount(), g.EdgeCount())
	}
	node, ok := g.Node(fp)
	if !ok || node.Depth != 0 {
		t.Fatalf("root node should be depth 0, got %+v (ok=%v)", node, ok)
	}
}

func TestNavigationGraphRecordTransitionNewScreen(t *testing.T) {
	g := NewNavigationGraph()
	root := g.Start([]TapPoint{{Text: "Feed"}, {Text: "Settings"}}, nil, nil, "", ScreenTabRoot)

	result := g.RecordTransition([]TapPoint{{Text: "Notifications"}, {Text: "Privacy"}}, nil, nil, "", ActionTap, "Settings", ScreenSettings)
	if result.Kind != TransitionNewScreen {
		t.Fatalf("expected a new screen transition, got %v", result.Kind)
	}
	if g.Current() != result.Fingerprint || g.Current() == root {
		t.Fatal("current should move to the new node")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d/%d", g.NodeCount(), g.EdgeCount())
	}
	node, _ := g.Node(result.Fingerprint)
	if node.Depth != 1 {
		t.Fatalf("child of root should be depth 1, got %d", node.Depth)
	}
}

func TestNavigationGraphRecordTransitionDuplicate(t *testing.T) {
	g := NewNavigationGraph()
	g.Start([]TapPoint{{Text: "Feed"}, {Text: "Settings"}, {Text: "Profile"}}, nil, nil, "", ScreenTabRoot)

	// Identical text content plus a decoration glyph too short to affect
	// the similarity text set, still above the 0.80 duplicate threshold.
	result := g.RecordTransition([]TapPoint{{Text: "Feed"}, {Text: "Settings"}, {Text: "Profile"}, {Text: ">"}}, nil, nil, "", ActionScroll, "", ScreenTabRoot)
	if result.Kind != TransitionDuplicate {
		t.Fatalf("expected a duplicate transition for a near-identical screen, got %v", result.Kind)
	}
	if g.NodeCount() != 1 {
		t.Fatalf("duplicate should not create a new node, got %d nodes", g.NodeCount())
	}
}

func TestNavigationGraphRecordTransitionRevisitedByFingerprint(t *testing.T) {
	g := NewNavigationGraph()
	root := g.Start([]TapPoint{{Text: "Feed"}, {Text: "Settings"}}, nil, nil, "", ScreenTabRoot)
	detail := g.RecordTransition([]TapPoint{{Text: "Notifications"}, {Text: "Privacy"}}, nil, nil, "", ActionTap, "Settings", ScreenSettings).Fingerprint

	// Navigate back to root via a detour, landing on a screen whose text
	// content matches root exactly once decoration noise is filtered out.
	g.SetCurrentFingerprint(detail)
	result := g.RecordTransition([]TapPoint{{Text: "Feed"}, {Text: "Settings"}, {Text: ">"}}, nil, nil, "", ActionTap, "back", ScreenTabRoot)
	if result.Kind != TransitionRevisited {
		t.Fatalf("expected a revisit to the existing root by fingerprint, got %v", result.Kind)
	}
	if result.Fingerprint != root {
		t.Fatalf("expected revisit to resolve to root fingerprint, got %v", result.Fingerprint)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("revisit should not create a new node, got %d nodes", g.NodeCount())
	}
}

func TestNavigationGraphVisitedAndScrollBookkeeping(t *testing.T) {
	g := NewNavigationGraph()
	fp := g.Start([]TapPoint{{Text: "Feed"}, {Text: "Settings"}}, nil, nil, "", ScreenTabRoot)

	g.MarkElementVisited(fp, "Feed")
	unvisited := g.UnvisitedElements(fp)
	if len(unvisited) != 1 || unvisited[0].Text != "Settings" {
		t.Fatalf("expected only Settings left unvisited, got %+v", unvisited)
	}

	novel := g.MergeScrolledElements(fp, []TapPoint{{Text: "Settings"}, {Text: "About"}})
	if novel != 1 {
		t.Fatalf("expected exactly 1 novel element merged, got %d", novel)
	}

	if g.ScrollCount(fp) != 0 {
		t.Fatal("scroll count should start at 0")
	}
	g.IncrementScrollCount(fp)
	if g.ScrollCount(fp) != 1 {
		t.Fatal("expected scroll count to increment")
	}
}

func TestNavigationGraphTraversalPhaseMonotonic(t *testing.T) {
	g := NewNavigationGraph()
	fp := g.Start([]TapPoint{{Text: "Feed"}}, nil, nil, "", ScreenTabRoot)

	if g.TraversalPhase(fp) != PhaseScout {
		t.Fatal("a fresh node should start in PhaseScout")
	}
	g.SetTraversalPhase(fp, PhaseDive)
	if g.TraversalPhase(fp) != PhaseDive {
		t.Fatal("expected phase to advance to PhaseDive")
	}
	g.SetTraversalPhase(fp, PhaseScout)
	if g.TraversalPhase(fp) != PhaseDive {
		t.Fatal("phase must never move backwards")
	}
}

func TestNavigationGraphScreenPlanCache(t *testing.T) {
	g := NewNavigationGraph()
	fp := g.Start([]TapPoint{{Text: "Feed"}, {Text: "Settings"}}, nil, nil, "", ScreenTabRoot)

	if _, ok := g.ScreenPlan(fp); ok {
		t.Fatal("no plan should be cached initially")
	}
	plan := []RankedElement{{Point: TapPoint{Text: "Settings"}, Score: 1}}
	g.SetScreenPlan(fp, plan)
	if cached, ok := g.ScreenPlan(fp); !ok || len(cached) != 1 {
		t.Fatal("expected the cached plan to be retrievable")
	}
	next := g.NextPlannedElement(fp)
	if next == nil || next.Text != "Settings" {
		t.Fatalf("expected Settings as next planned element, got %+v", next)
	}
	g.MarkElementVisited(fp, "Settings")
	if g.NextPlannedElement(fp) != nil {
		t.Fatal("expected nil once the only planned element is visited")
	}
	g.ClearScreenPlan(fp)
	if _, ok := g.ScreenPlan(fp); ok {
		t.Fatal("expected the plan to be cleared")
	}
}
