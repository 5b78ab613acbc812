package explorer

import "testing"

func TestExplorationSessionModeDetection(t *testing.T) {
	s := NewSession()
	s.Start("demo", "", nil)
	if s.CurrentMode() != ModeDiscovery {
		t.Error("no goal and no goal queue should be discovery mode")
	}

	s.Start("demo", "find settings", nil)
	if s.CurrentMode() != ModeGoalDriven {
		t.Error("a goal should put the session in goal-driven mode")
	}

	s.Start("demo", "", []string{"a", "b"})
	if s.CurrentMode() != ModeGoalDriven {
		t.Error("a goal queue should put the session in goal-driven mode")
	}
}

func TestExplorationSessionCaptureDeduplicatesAndFinalizes(t *testing.T) {
	s := NewSession()
	s.Start("demo", "", nil)

	root := []TapPoint{{Text: "Feed"}, {Text: "Settings"}}
	if ok := s.Capture(root, nil, nil, ActionLaunch, "", "", ScreenTabRoot); !ok {
		t.Fatal("first capture should be accepted")
	}
	if s.LastTransition().Kind != TransitionNewScreen {
		t.Fatalf("first capture should forward to graph.Start as a new screen, got %v", s.LastTransition().Kind)
	}
	if s.ScreenCount() != 1 {
		t.Fatalf("expected 1 accepted screen, got %d", s.ScreenCount())
	}

	// Near-identical repeat of the same screen should be rejected.
	if ok := s.Capture(append(root, TapPoint{Text: ">"}), nil, nil, ActionScroll, "", "", ScreenTabRoot); ok {
		t.Fatal("a near-duplicate capture should not be accepted")
	}
	if s.ScreenCount() != 1 {
		t.Fatalf("duplicate capture should not add a screen, got %d", s.ScreenCount())
	}

	data := s.Finalize()
	if data == nil || data.AppName != "demo" || len(data.Screens) != 1 {
		t.Fatalf("unexpected finalize result: %+v", data)
	}
	if s.Active() {
		t.Error("a non-manifest session should deactivate after Finalize")
	}
	if s.Finalize() != nil {
		t.Error("a second Finalize on an inactive session should return nil")
	}
}

func TestExplorationSessionManifestModeAdvancesGoals(t *testing.T) {
	s := NewSession()
	s.Start("demo", "", []string{"goal-one", "goal-two"})
	s.Capture([]TapPoint{{Text: "Feed"}}, nil, nil, ActionLaunch, "", "", ScreenTabRoot)

	data := s.Finalize()
	if data == nil || data.Goal != "goal-one" {
		t.Fatalf("expected the first queued goal in the finalized data, got %+v", data)
	}
	if !s.Active() {
		t.Fatal("manifest mode should stay active after finalizing a non-final goal")
	}
	if s.ScreenCount() != 0 {
		t.Fatal("expected per-goal state to reset after advancing to the next goal")
	}
}
