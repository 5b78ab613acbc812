package explorer

import "testing"

func buildTestSnapshot() GraphSnapshot {
	root := ScreenFingerprint("root")
	a := ScreenFingerprint("a")
	b := ScreenFingerprint("b")
	leaf := ScreenFingerprint("leaf")

	nodes := map[ScreenFingerprint]GraphNode{
		root: {Fingerprint: root, Depth: 0, ScreenType: ScreenTabRoot, Elements: []TapPoint{{Text: "Feed"}, {Text: "Settings"}}},
		a:    {Fingerprint: a, Depth: 1, ScreenType: ScreenList, Elements: []TapPoint{{Text: "Notifications"}}},
		b:    {Fingerprint: b, Depth: 1, ScreenType: ScreenDetail, Elements: []TapPoint{{Text: "Privacy"}}},
		leaf: {Fingerprint: leaf, Depth: 2, ScreenType: ScreenDetail, Elements: []TapPoint{{Text: "Allow location access at all times"}, {Text: "Save"}}},
	}
	edges := []GraphEdge{
		{FromFingerprint: root, ToFingerprint: a, ActionType: ActionTap, ElementText: "Settings"},
		{FromFingerprint: root, ToFingerprint: b, ActionType: ActionTap, ElementText: "Privacy"},
		{FromFingerprint: a, ToFingerprint: leaf, ActionType: ActionTap, ElementText: "Notifications"},
	}
	return GraphSnapshot{Nodes: nodes, Edges: edges, RootFingerprint: root}
}

func TestFindInterestingPathsFindsLeaves(t *testing.T) {
	snapshot := buildTestSnapshot()
	paths := FindInterestingPaths(snapshot)

	// b (no outgoing edges) and leaf (deepest node) are both leaves.
	if len(paths) != 2 {
		t.Fatalf("expected 2 leaf paths, got %d: %+v", len(paths), paths)
	}
	for _, p := range paths {
		if len(p.Edges) == 0 {
			t.Fatal("every path from a non-root leaf should carry at least one edge")
		}
	}
}

func TestFindInterestingPathsShortNameJoinsLabels(t *testing.T) {
	snapshot := buildTestSnapshot()
	paths := FindInterestingPaths(snapshot)

	var bPath *Path
	for i := range paths {
		if paths[i].Leaf == ScreenFingerprint("b") {
			bPath = &paths[i]
		}
	}
	if bPath == nil {
		t.Fatal("expected a path ending at leaf b")
	}
	if bPath.Name != "Privacy" {
		t.Fatalf("a single-edge path should be named after its one edge label, got %q", bPath.Name)
	}
}

func TestFindInterestingPathsLongNameUsesLandmark(t *testing.T) {
	snapshot := buildTestSnapshot()
	// Add a third hop so the root->a->leaf->x path exceeds 2 edges.
	x := ScreenFingerprint("x")
	snapshot.Nodes[x] = GraphNode{Fingerprint: x, Depth: 3, ScreenType: ScreenDetail, Elements: []TapPoint{{Text: "Confirm"}}}
	snapshot.Edges = append(snapshot.Edges, GraphEdge{FromFingerprint: ScreenFingerprint("leaf"), ToFingerprint: x, ActionType: ActionTap, ElementText: "Save"})

	paths := FindInterestingPaths(snapshot)
	var xPath *Path
	for i := range paths {
		if paths[i].Leaf == x {
			xPath = &paths[i]
		}
	}
	if xPath == nil {
		t.Fatal("expected a path ending at the new 3-hop leaf x")
	}
	if xPath.Name != "Settings to Confirm" {
		t.Fatalf("expected long-path naming to use first hop + leaf landmark, got %q", xPath.Name)
	}
}

func TestPathToExploredScreensResolvesNodes(t *testing.T) {
	snapshot := buildTestSnapshot()
	edges := []GraphEdge{
		{FromFingerprint: snapshot.RootFingerprint, ToFingerprint: "a", ActionType: ActionTap, ElementText: "Settings"},
	}
	screens := PathToExploredScreens(edges, snapshot)
	if len(screens) != 2 {
		t.Fatalf("expected root + 1 destination, got %d: %+v", len(screens), screens)
	}
	if screens[0].Index != 0 || screens[0].Fingerprint != snapshot.RootFingerprint || screens[0].ActionType != ActionLaunch {
		t.Fatalf("expected hop 0 to be the root screen reached by launch, got %+v", screens[0])
	}
	if screens[1].Index != 1 || screens[1].ScreenType != ScreenList || screens[1].ArrivedVia != "Settings" {
		t.Fatalf("unexpected destination hop: %+v", screens[1])
	}
	for i := 1; i < len(screens); i++ {
		if screens[i].Index != screens[i-1].Index+1 {
			t.Fatalf("index must increase strictly by one per hop: %+v", screens)
		}
	}
}
