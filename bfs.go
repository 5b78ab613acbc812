package explorer

import (
	"context"
	"time"
)

// pathAction replays one step of the route from root to a frontier node:
// tap the recorded coordinate, which is expected to reproduce the
// recorded element's transition.
type pathAction struct {
	elementText string
	x, y        float64
}

// frontierEntry is one queued node awaiting its turn to be dived into,
// paired with the tap sequence needed to physically walk there from
// root.
type frontierEntry struct {
	fingerprint ScreenFingerprint
	path        []pathAction
}

// pendingKind distinguishes what the explorer is waiting to observe the
// result of, since (like DFSExplorer) every physical action's outcome is
// only visible on the following Step call's fresh Describe.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingDiveChild
	pendingPathReplay
)

// BFSExplorer explores level-by-level: every unvisited element on the
// active frontier node is dived into (and immediately backtracked out
// of, enqueuing the discovered child for later) before any child is
// itself expanded. Moving from one frontier node to the next means
// walking back to root and replaying the queued tap path, rather than
// DFSExplorer's single-step backtrack. Grounded on the teacher's
// walkDir/consumer fan-out batch-processing loop (cmd/caire), here
// generalized from "process every file in a directory" to "process
// every node at the current graph depth before descending".
type BFSExplorer struct {
	session  *ExplorationSession
	strategy PlatformStrategy
	budget   ExplorationBudget

	startTime     time.Time
	queue         []frontierEntry
	active        *frontierEntry
	physicalDepth int

	actionsOnScreen map[ScreenFingerprint]int

	pending           pendingKind
	pendingChildPath  []pathAction
	pendingAction     ActionType
	pendingArrivedVia string
}

// NewBFSExplorer returns an explorer ready to drive session, which must
// already be Start-ed.
func NewBFSExplorer(session *ExplorationSession, strategy PlatformStrategy, budget ExplorationBudget) *BFSExplorer {
	return &BFSExplorer{
		session:         session,
		strategy:        strategy,
		budget:          budget,
		actionsOnScreen: map[ScreenFingerprint]int{},
		pendingAction:   ActionLaunch,
	}
}

func (b *BFSExplorer) currentDepth() int {
	graph := b.session.Graph()
	if !graph.Started() {
		return 0
	}
	if n, ok := graph.Node(graph.Current()); ok {
		return n.Depth
	}
	return 0
}

// Step advances the exploration by one bundle of physical actions, per
// the same external contract as DFSExplorer.Step (spec §4.9: "same
// external Step contract/budgets").
func (b *BFSExplorer) Step(ctx context.Context, describer Describer, actuator InputActuator) StepResult {
	ctx = frameContext(ctx)
	if b.startTime.IsZero() {
		b.startTime = stepClockStart()
	}

	if b.budget.isExhausted(b.currentDepth(), b.session.ScreenCount(), stepClockStart().Sub(b.startTime)) {
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
	}

	graph := b.session.Graph()
	screenType := b.strategy.ClassifyScreen(capture.Elements, capture.Hints)
	accepted := b.session.Capture(capture.Elements, capture.Hints, capture.Icons, b.pendingAction, b.pendingArrivedVia, capture.ScreenshotBase64, screenType)
	finishedPending, finishedChildPath := b.pending, b.pendingChildPath
	b.pending, b.pendingAction, b.pendingArrivedVia = pendingNone, ActionTap, ""

	if !graph.Started() {
		return pausedStep("graph failed to start")
	}

	if b.active == nil {
		root := frontierEntry{fingerprint: graph.Root()}
		b.active = &root
		b.physicalDepth = 0
	}

	// Observe the outcome of the previous step's dive tap: a newScreen
	// discovered a child to enqueue for later; a revisited screen is not
	// frontier-worthy but is still backed out of; a duplicate means the
	// tap never left the frontier node.
	if finishedPending == pendingDiveChild {
		kind := b.session.LastTransition().Kind
		if !accepted || kind == TransitionDuplicate {
			b.physicalDepth--
		} else {
			detail := "revisited a known screen, returned to frontier node"
			if kind == TransitionNewScreen {
				b.queue = append(b.queue, frontierEntry{
					fingerprint: graph.Current(),
					path:        finishedChildPath,
				})
				detail = "discovered child, returned to frontier node"
			}
			if msg := b.pressBack(ctx, actuator); msg != "" {
				return pausedStep(wrapActuatorErr("return-to-frontier backtrack", msg).Error())
			}
			b.physicalDepth--
			graph.SetCurrentFingerprint(b.active.fingerprint)
			return continueStep(detail)
		}
	}

	current := b.active.fingerprint
	depth := b.currentDepth()

	if b.strategy.IsTerminal(capture.Elements, depth, b.budget, screenType) {
		return b.advanceFrontier(ctx, actuator, graph)
	}

	classified := ClassifyElements(capture.Elements)

	if b.actionsOnScreen[current] < b.budget.MaxActionsPerScreen {
		if result, handled := b.diveStep(ctx, actuator, graph, current, classified); handled {
			return result
		}
	}

	return b.advanceFrontier(ctx, actuator, graph)
}

// diveStep taps the highest-ranked unvisited navigation element on the
// active frontier node, same ranking machinery as DFSExplorer. Unlike
// DFS it never descends past the tap: the next Step call observes the
// result and, if the tap left this node, immediately returns to it (see pendingDiveChild
// handling above), so every child is discovered before any is expanded.
func (b *BFSExplorer) diveStep(ctx context.Context, actuator InputActuator, graph *NavigationGraph, current ScreenFingerprint, classified []ClassifiedElement) (StepResult, bool) {
	if _, hasPlan := graph.ScreenPlan(current); !hasPlan {
		visited := visitedSet(graph, current)
		plan := BuildPlan(classified, visited, graph.ScoutResults(current), b.strategyScreenHeight())
		graph.SetScreenPlan(current, plan)
	}

	next := graph.NextPlannedElement(current)
	for next != nil && b.strategy.ShouldSkip(next.Text, b.budget) {
		graph.MarkElementVisited(current, next.Text)
		next = graph.NextPlannedElement(current)
	}
	if next == nil {
		return StepResult{}, false
	}

	if msg := actuator.Tap(ctx, next.X, next.Y); msg != "" {
		return pausedStep(wrapActuatorErr("dive tap", msg).Error()), true
	}
	b.actionsOnScreen[current]++
	b.physicalDepth++
	graph.MarkElementVisited(current, next.Text)

	b.pending = pendingDiveChild
	b.pendingChildPath = append(append([]pathAction(nil), b.active.path...), pathAction{elementText: next.Text, x: next.X, y: next.Y})
	b.pendingAction, b.pendingArrivedVia = ActionTap, next.Text

	return continueStep("dived into: " + next.Text), true
}

// advanceFrontier moves on from the active node once it is terminal, has
// no unvisited elements left, or has no remaining per-screen action
// budget. It walks
// back to root, pops the next entry off the FIFO queue and replays its
// tap path in a single bundled Step call, mirroring DFSExplorer's
// fast-backtrack precedent of bundling several physical actions into
// one step result.
func (b *BFSExplorer) advanceFrontier(ctx context.Context, actuator InputActuator, graph *NavigationGraph) StepResult {
	if len(b.queue) == 0 {
		return finishedStep("exploration complete")
	}

	for i := 0; i < b.physicalDepth; i++ {
		if msg := b.pressBack(ctx, actuator); msg != "" {
			return pausedStep(wrapActuatorErr("return-to-root backtrack", msg).Error())
		}
	}
	graph.SetCurrentFingerprint(graph.Root())
	b.physicalDepth = 0

	next := b.queue[0]
	b.queue = b.queue[1:]

	for _, step := range next.path {
		if msg := actuator.Tap(ctx, step.x, step.y); msg != "" {
			return pausedStep(wrapActuatorErr("path replay", msg).Error())
		}
		b.physicalDepth++
	}
	graph.SetCurrentFingerprint(next.fingerprint)
	b.active = &next
	b.pending = pendingPathReplay

	return continueStep("advanced to next frontier node")
}

func (b *BFSExplorer) pressBack(ctx context.Context, actuator InputActuator) string {
	switch b.strategy.BacktrackMethod(nil, b.physicalDepth) {
	case BacktrackTapBack:
		return actuator.Tap(ctx, 20, 40)
	case BacktrackPressBack:
		return actuator.PressKey(ctx, "[", []string{"cmd"})
	default:
		return ""
	}
}

func (b *BFSExplorer) strategyScreenHeight() float64 {
	switch s := b.strategy.(type) {
	case *MobileAppStrategy:
		return s.ScreenHeight
	case *DesktopAppStrategy:
		return s.ScreenHeight
	default:
		return 844
	}
}
