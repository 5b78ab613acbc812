package explorer

import "testing"

func TestBuildPlanExcludesVisitedAndNonNavigation(t *testing.T) {
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Settings", Y: 100}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Profile", Y: 200}, Role: RoleNavigation},
		{Point: TapPoint{Text: "87%", Y: 300}, Role: RoleInfo},
	}
	visited := map[string]struct{}{"Profile": {}}

	plan := BuildPlan(classified, visited, nil, 800)
	if len(plan) != 1 || plan[0].Point.Text != "Settings" {
		t.Fatalf("expected only unvisited navigation element Settings, got %+v", plan)
	}
}

func TestBuildPlanOrdersByScoreThenY(t *testing.T) {
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Notifications and alerts settings screen", Y: 100}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Short", Y: 50}, Role: RoleNavigation, HasChevronContext: true},
	}
	plan := BuildPlan(classified, nil, nil, 800)
	if len(plan) != 2 {
		t.Fatalf("expected 2 ranked elements, got %d", len(plan))
	}
	if plan[0].Point.Text != "Short" {
		t.Fatalf("expected chevron+short-label element to outrank a long plain label, got order %v, %v", plan[0].Point.Text, plan[1].Point.Text)
	}
}

func TestBuildPlanExcludesScoutedNoChange(t *testing.T) {
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Feed", Y: 100}, Role: RoleNavigation},
	}
	scoutResults := map[string]ScoutOutcome{"Feed": ScoutNoChange}
	plan := BuildPlan(classified, nil, scoutResults, 800)
	if len(plan) != 0 {
		t.Fatalf("expected scouted no-op element to be excluded, got %+v", plan)
	}
}

func TestBuildPlanPrioritizesScoutedNavigated(t *testing.T) {
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Feed", Y: 50}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Explore", Y: 100}, Role: RoleNavigation},
	}
	scoutResults := map[string]ScoutOutcome{"Explore": ScoutNavigated}
	plan := BuildPlan(classified, nil, scoutResults, 800)
	if plan[0].Point.Text != "Explore" {
		t.Fatalf("expected the confirmed-navigating scouted element to rank first, got %+v", plan)
	}
}

func TestScoutPhaseShouldScoutBoundaries(t *testing.T) {
	s := ScoutPhase{}
	if !s.ShouldScout(ScreenTabRoot, 0, 4) {
		t.Error("expected tab root at shallow depth with 4 navigables to qualify for scouting")
	}
	if s.ShouldScout(ScreenTabRoot, 2, 4) {
		t.Error("depth 2 should no longer qualify for scouting")
	}
	if s.ShouldScout(ScreenTabRoot, 0, 3) {
		t.Error("3 navigables should not meet the scouting threshold")
	}
	if s.ShouldScout(ScreenList, 0, 10) {
		t.Error("non-tab-root screens should never qualify for scouting")
	}
}

func TestScoutPhaseRankForDivePutsNavigatedFirstAndExcludesNoChange(t *testing.T) {
	s := ScoutPhase{}
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Feed"}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Explore"}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Settings"}, Role: RoleNavigation},
		{Point: TapPoint{Text: "87%"}, Role: RoleInfo},
	}
	scoutResults := map[string]ScoutOutcome{
		"Feed":     ScoutNoChange,
		"Explore":  ScoutNavigated,
		"Settings": ScoutNavigated,
	}

	ranked := s.RankForDive(scoutResults, classified)
	if len(ranked) != 2 {
		t.Fatalf("expected noChange and non-navigation elements excluded, got %+v", ranked)
	}
	if ranked[0].Text != "Explore" || ranked[1].Text != "Settings" {
		t.Fatalf("expected scouted-navigated elements first in scout order, got %+v", ranked)
	}
}

func TestScoutPhaseRankForDiveAppendsUnscoutedAfterNavigated(t *testing.T) {
	s := ScoutPhase{}
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Profile"}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Explore"}, Role: RoleNavigation},
	}
	scoutResults := map[string]ScoutOutcome{"Explore": ScoutNavigated}

	ranked := s.RankForDive(scoutResults, classified)
	if len(ranked) != 2 || ranked[0].Text != "Explore" || ranked[1].Text != "Profile" {
		t.Fatalf("expected navigated element before unscouted element, got %+v", ranked)
	}
}

func TestScoutPhaseNextScoutTarget(t *testing.T) {
	s := ScoutPhase{}
	classified := []ClassifiedElement{
		{Point: TapPoint{Text: "Feed"}, Role: RoleNavigation},
		{Point: TapPoint{Text: "Explore"}, Role: RoleNavigation},
	}
	target := s.NextScoutTarget(classified, map[string]ScoutOutcome{"Feed": ScoutNavigated})
	if target == nil || target.Text != "Explore" {
		t.Fatalf("expected Explore as next unscouted target, got %+v", target)
	}
	if s.NextScoutTarget(classified, map[string]ScoutOutcome{"Feed": ScoutNavigated, "Explore": ScoutNoChange}) != nil {
		t.Fatal("expected nil once every navigation element has been scouted")
	}
}
