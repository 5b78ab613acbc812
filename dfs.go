package explorer

import (
	"context"
	"time"
)

// DFSExplorer drives one depth-first exploration run: scout the current
// tab root (if applicable), dive into the highest-ranked unvisited
// navigation element, fall back to scrolling when nothing unvisited
// remains, and backtrack when a screen is exhausted. Grounded on
// carver.go's multi-phase ComputeSeams/FindLowestEnergySeams/RemoveSeam
// pipeline shape (scout/dive/scroll/backtrack as successive passes over
// the same frame) and exec.go's channel-driven step signalling,
// generalized here to an explicit stack instead of a worker pool since
// DFS is inherently single-threaded per spec §5.
type DFSExplorer struct {
	session  *ExplorationSession
	strategy PlatformStrategy
	budget   ExplorationBudget
	scout    ScoutPhase

	startTime time.Time
	stack     []ScreenFingerprint

	actionsOnScreen map[ScreenFingerprint]int
	scoutCount      map[ScreenFingerprint]int

	pendingAction     ActionType
	pendingArrivedVia string
}

// NewDFSExplorer returns an explorer ready to drive session, which must
// already be Start-ed.
func NewDFSExplorer(session *ExplorationSession, strategy PlatformStrategy, budget ExplorationBudget) *DFSExplorer {
	return &DFSExplorer{
		session:         session,
		strategy:        strategy,
		budget:          budget,
		startTime:       time.Time{},
		actionsOnScreen: map[ScreenFingerprint]int{},
		scoutCount:      map[ScreenFingerprint]int{},
		pendingAction:   ActionLaunch,
	}
}

func (d *DFSExplorer) currentDepth() int {
	graph := d.session.Graph()
	if !graph.Started() {
		return 0
	}
	if n, ok := graph.Node(graph.Current()); ok {
		return n.Depth
	}
	return 0
}

// Step advances the exploration by one unit of work, per spec §4.8:
// usually one physical action, zero for a pure-observation
// budget/terminal check, and several for a navigated scout (tap then
// back) or a fast backtrack to root.
func (d *DFSExplorer) Step(ctx context.Context, describer Describer, actuator InputActuator) StepResult {
	ctx = frameContext(ctx)
	if d.startTime.IsZero() {
		d.startTime = stepClockStart()
	}

	elapsed := stepClockStart().Sub(d.startTime)
	if d.budget.isExhausted(d.currentDepth(), d.session.ScreenCount(), elapsed) {
		return finishedStep("budget exhausted")
	}

	capture := describer.Describe(ctx, false)
	if capture == nil {
		return pausedStep(wrapDescribeErr("initial describe").Error())
	}

	if alert := DetectAlert(capture.Elements); alert != nil {
		if msg := actuator.Tap(ctx, alert.DismissTarget.X, alert.DismissTarget.Y); msg == "" {
			describer.Describe(ctx, true)
			return continueStep("dismissed alert: " + alert.DismissTarget.Text)
		}
		// alert-dismiss failed: degrade to a normal dive step using the
		// elements already captured above, per spec §7.
	}

	graph := d.session.Graph()
	screenType := d.strategy.ClassifyScreen(capture.Elements, capture.Hints)
	accepted := d.session.Capture(capture.Elements, capture.Hints, capture.Icons, d.pendingAction, d.pendingArrivedVia, capture.ScreenshotBase64, screenType)
	d.pendingAction, d.pendingArrivedVia = ActionTap, ""

	if !graph.Started() {
		return pausedStep("graph failed to start")
	}
	if len(d.stack) == 0 {
		d.stack = []ScreenFingerprint{graph.Root()}
	} else if accepted && d.session.LastTransition().Kind == TransitionNewScreen {
		d.stack = append(d.stack, graph.Current())
	}

	current := graph.Current()
	depth := d.currentDepth()

	if d.strategy.IsTerminal(capture.Elements, depth, d.budget, screenType) {
		return d.backtrack(ctx, actuator, graph)
	}

	classified := ClassifyElements(capture.Elements)
	navigationCount := 0
	for _, ce := range classified {
		if ce.Role == RoleNavigation {
			navigationCount++
		}
	}

	if graph.TraversalPhase(current) == PhaseScout &&
		d.scout.ShouldScout(screenType, depth, navigationCount) &&
		d.scoutCount[current] < d.budget.MaxScoutsPerScreen {
		if result := d.scoutStep(ctx, describer, actuator, graph, current, classified); result.Kind != StepKind(-1) {
			return result
		}
		graph.SetTraversalPhase(current, PhaseDive)
	}

	if d.actionsOnScreen[current] < d.budget.MaxActionsPerScreen {
		if result, handled := d.diveStep(ctx, describer, actuator, graph, current, classified, screenType); handled {
			return result
		}
	}

	if d.actionsOnScreen[current] >= d.budget.MaxActionsPerScreen {
		return d.backtrack(ctx, actuator, graph)
	}

	if graph.ScrollCount(current) < d.budget.ScrollLimit {
		return d.scrollStep(ctx, describer, actuator, graph, current)
	}

	return d.backtrack(ctx, actuator, graph)
}

// scoutStep probes the next unscouted navigation element on current, a
// tab-root screen, classifying whether the tap navigated (Jaccard below
// threshold against the pre-tap elements) or was a no-op. A navigated
// scout immediately backtracks one step and resyncs the graph to the
// scouted screen (current) without
// ever marking the element visited, per spec §4.4/invariant 7. Returns
// a result with Kind == StepKind(-1) as a sentinel meaning "nothing to
// scout, caller should fall through to dive".
func (d *DFSExplorer) scoutStep(ctx context.Context, describer Describer, actuator InputActuator, graph *NavigationGraph, current ScreenFingerprint, classified []ClassifiedElement) StepResult {
	target := d.scout.NextScoutTarget(classified, graph.ScoutResults(current))
	if target == nil {
		return StepResult{Kind: StepKind(-1)}
	}

	beforeElements := make([]TapPoint, len(classified))
	for i, ce := range classified {
		beforeElements[i] = ce.Point
	}

	if msg := actuator.Tap(ctx, target.X, target.Y); msg != "" {
		return pausedStep(wrapActuatorErr("scout tap", msg).Error())
	}
	d.scoutCount[current]++

	after := describer.Describe(ctx, false)
	if after == nil {
		return pausedStep(wrapDescribeErr("post-scout describe").Error())
	}

	if jaccardSimilarity(after.Elements, beforeElements) >= jaccardThreshold {
		graph.RecordScoutResult(current, target.Text, ScoutNoChange)
		return continueStep("scouted (no change): " + target.Text)
	}

	graph.RecordScoutResult(current, target.Text, ScoutNavigated)
	if msg := d.pressBack(ctx, actuator); msg != "" {
		return pausedStep(wrapActuatorErr("scout backtrack", msg).Error())
	}
	graph.SetCurrentFingerprint(current)
	return continueStep("scouted (navigated): " + target.Text)
}

// diveStep taps the highest-ranked unvisited navigation element on
// current, building/caching a plan seeded with scout results if one
// isn't already cached. Returns handled=false when there is nothing
// left to dive into, so the caller falls through to scroll/backtrack.
func (d *DFSExplorer) diveStep(ctx context.Context, describer Describer, actuator InputActuator, graph *NavigationGraph, current ScreenFingerprint, classified []ClassifiedElement, screenType ScreenType) (StepResult, bool) {
	if _, hasPlan := graph.ScreenPlan(current); !hasPlan {
		visited := visitedSet(graph, current)
		plan := BuildPlan(classified, visited, graph.ScoutResults(current), d.strategyScreenHeight())
		graph.SetScreenPlan(current, plan)
	}

	next := graph.NextPlannedElement(current)
	for next != nil && d.strategy.ShouldSkip(next.Text, d.budget) {
		graph.MarkElementVisited(current, next.Text)
		next = graph.NextPlannedElement(current)
	}
	if next == nil {
		return StepResult{}, false
	}

	if msg := actuator.Tap(ctx, next.X, next.Y); msg != "" {
		return pausedStep(wrapActuatorErr("dive tap", msg).Error()), true
	}
	d.actionsOnScreen[current]++
	graph.MarkElementVisited(current, next.Text)
	d.pendingAction, d.pendingArrivedVia = ActionTap, next.Text

	return continueStep("dived into: " + next.Text), true
}

// scrollStep swipes once, re-OCRs and merges novel elements into
// current's node, resetting the action budget and invalidating the
// cached plan when anything new surfaced.
func (d *DFSExplorer) scrollStep(ctx context.Context, describer Describer, actuator InputActuator, graph *NavigationGraph, current ScreenFingerprint) StepResult {
	h := d.strategyScreenHeight()
	if msg := actuator.Swipe(ctx, h/2, h*0.75, h/2, h*0.25, 300); msg != "" {
		return pausedStep(wrapActuatorErr("scroll", msg).Error())
	}
	graph.IncrementScrollCount(current)

	after := describer.Describe(ctx, false)
	if after == nil {
		return pausedStep(wrapDescribeErr("post-scroll describe").Error())
	}

	novel := graph.MergeScrolledElements(current, after.Elements)
	if novel > 0 {
		d.actionsOnScreen[current] = 0
		graph.ClearScreenPlan(current)
		return continueStep("scroll revealed new elements")
	}
	return continueStep("scroll revealed nothing new")
}

// backtrack pops the DFS stack. When the root is a tab-root screen and
// the stack is at least 3 deep, it fast-backtracks directly to root
// within one step, pressing back once per stack frame above root;
// otherwise it takes a single step back to the stack's
// parent frame. A stack of depth <= 1 with nothing left to do finishes
// the run.
func (d *DFSExplorer) backtrack(ctx context.Context, actuator InputActuator, graph *NavigationGraph) StepResult {
	if len(d.stack) <= 1 {
		return finishedStep("exploration complete")
	}

	root := graph.Root()
	rootNode, _ := graph.Node(root)

	if rootNode.ScreenType == ScreenTabRoot && len(d.stack) >= 3 {
		presses := len(d.stack) - 1
		for i := 0; i < presses; i++ {
			if msg := d.pressBack(ctx, actuator); msg != "" {
				return pausedStep(wrapActuatorErr("fast backtrack", msg).Error())
			}
		}
		graph.SetCurrentFingerprint(root)
		d.stack = []ScreenFingerprint{root}
		return backtrackedStep("fast backtrack to root")
	}

	parent := d.stack[len(d.stack)-2]
	if msg := d.pressBack(ctx, actuator); msg != "" {
		return pausedStep(wrapActuatorErr("backtrack", msg).Error())
	}
	graph.SetCurrentFingerprint(parent)
	d.stack = d.stack[:len(d.stack)-1]
	return backtrackedStep("backtracked one screen")
}

// pressBack translates the strategy's abstract BacktrackMethod into a
// physical actuation. Both platform strategies return BacktrackPressBack
// at depth >= 1, which on both iPhone-mirroring and macOS control
// surfaces is Cmd+[ (spec §4.6).
func (d *DFSExplorer) pressBack(ctx context.Context, actuator InputActuator) string {
	switch d.strategy.BacktrackMethod(nil, len(d.stack)) {
	case BacktrackTapBack:
		return actuator.Tap(ctx, 20, 40)
	case BacktrackPressBack:
		return actuator.PressKey(ctx, "[", []string{"cmd"})
	default:
		return ""
	}
}

func (d *DFSExplorer) strategyScreenHeight() float64 {
	switch s := d.strategy.(type) {
	case *MobileAppStrategy:
		return s.ScreenHeight
	case *DesktopAppStrategy:
		return s.ScreenHeight
	default:
		return 844
	}
}

func visitedSet(graph *NavigationGraph, fp ScreenFingerprint) map[string]struct{} {
	n, ok := graph.Node(fp)
	if !ok {
		return map[string]struct{}{}
	}
	unvisited := graph.UnvisitedElements(fp)
	unvisitedText := make(map[string]struct{}, len(unvisited))
	for _, e := range unvisited {
		unvisitedText[e.Text] = struct{}{}
	}
	visited := make(map[string]struct{})
	for _, e := range n.Elements {
		if _, stillUnvisited := unvisitedText[e.Text]; !stillUnvisited {
			visited[e.Text] = struct{}{}
		}
	}
	return visited
}

// stepClockStart is a thin indirection over time.Now that stamps the
// start time budget timing is measured from.
func stepClockStart() time.Time {
	return time.Now()
}
