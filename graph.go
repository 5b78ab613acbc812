package explorer

import (
	"sync"

	"github.com/mirroir/uiexplorer/internal/screenshot"
)

// GraphNode is the canonical record for one screen, keyed by its
// fingerprint. Mutable fields (visitedElements, scrollCount,
// scoutResults, traversalPhase, screenPlan) accrete state as the
// explorer revisits the node across steps.
type GraphNode struct {
	Fingerprint      ScreenFingerprint
	Depth            int
	ScreenType       ScreenType
	Elements         []TapPoint
	Icons            []Icon
	Hints            []string
	ScreenshotBase64 string

	visitedElements map[string]struct{}
	scrollCount     int
	scoutResults    map[string]ScoutOutcome
	traversalPhase  TraversalPhase
	screenPlan      []RankedElement
	hasScreenPlan   bool
}

// GraphEdge is an append-only transition record between two nodes.
type GraphEdge struct {
	FromFingerprint ScreenFingerprint
	ToFingerprint   ScreenFingerprint
	ActionType      ActionType
	ElementText     string
}

// TransitionKind classifies the outcome of RecordTransition.
type TransitionKind int

const (
	TransitionDuplicate TransitionKind = iota
	TransitionRevisited
	TransitionNewScreen
)

// TransitionResult reports what RecordTransition did.
type TransitionResult struct {
	Kind        TransitionKind
	Fingerprint ScreenFingerprint
}

// GraphSnapshot is the immutable result of NavigationGraph.Finalize.
type GraphSnapshot struct {
	Nodes           map[ScreenFingerprint]GraphNode
	Edges           []GraphEdge
	RootFingerprint ScreenFingerprint
}

// NavigationGraph is the canonical store of screens, transitions and
// per-node exploration state (spec §4.5). Mutating methods are
// serialized under mu per §5; read-only accessors take the read lock so
// a concurrent telemetry reader always sees a consistent view while a
// step() is in flight -- grounded on exec.go's mutex/channel-guarded
// shared state across its worker pool, generalized from "protect a
// result channel" to "protect the whole graph".
type NavigationGraph struct {
	mu sync.RWMutex

	nodes   map[ScreenFingerprint]*GraphNode
	edges   []GraphEdge
	current ScreenFingerprint
	root    ScreenFingerprint
	started bool
}

// NewNavigationGraph returns an empty, not-yet-started graph.
func NewNavigationGraph() *NavigationGraph {
	return &NavigationGraph{nodes: map[ScreenFingerprint]*GraphNode{}}
}

// Start resets all state and creates the root node at depth 0 (spec
// §4.5). Safe to call again mid-session: manifest mode rebuilds the
// graph from scratch per goal.
func (g *NavigationGraph) Start(elements []TapPoint, icons []Icon, hints []string, screenshot string, screenType ScreenType) ScreenFingerprint {
	g.mu.Lock()
	defer g.mu.Unlock()

	fp := ComputeFingerprint(elements, icons)
	g.nodes = map[ScreenFingerprint]*GraphNode{
		fp: newNode(fp, 0, screenType, elements, icons, hints, screenshot),
	}
	g.edges = nil
	g.current = fp
	g.root = fp
	g.started = true
	return fp
}

// newNode stores a thumbnail of shot rather than the full-resolution
// capture, keeping GraphSnapshot small enough to serialize into a
// manifest report. A thumbnail failure (unrecognised format, corrupt
// data) falls back to the raw bytes rather than erroring, since graph
// operations are total functions per spec §7.
func newNode(fp ScreenFingerprint, depth int, screenType ScreenType, elements []TapPoint, icons []Icon, hints []string, shot string) *GraphNode {
	thumb, err := screenshot.ThumbnailBase64(shot)
	if err != nil {
		thumb = shot
	}
	return &GraphNode{
		Fingerprint:      fp,
		Depth:            depth,
		ScreenType:       screenType,
		Elements:         elements,
		Icons:            icons,
		Hints:            hints,
		ScreenshotBase64: thumb,
		visitedElements:  map[string]struct{}{},
		scoutResults:     map[string]ScoutOutcome{},
		traversalPhase:   PhaseScout,
	}
}

// RecordTransition captures the screen reached by an action and
// classifies the outcome per spec §4.5: duplicate (no node/edge change),
// revisited (edge to an existing node), or newScreen (new node + edge).
// current is only ever set here, by Start, or by SetCurrentFingerprint.
func (g *NavigationGraph) RecordTransition(elements []TapPoint, icons []Icon, hints []string, screenshot string, actionType ActionType, elementText string, screenType ScreenType) TransitionResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	fp := ComputeFingerprint(elements, icons)
	curNode := g.nodes[g.current]

	if curNode != nil && (fp == g.current || jaccardSimilarity(elements, curNode.Elements) >= jaccardThreshold) {
		return TransitionResult{Kind: TransitionDuplicate, Fingerprint: g.current}
	}

	if existing, ok := g.nodes[fp]; ok {
		g.addEdge(actionType, elementText, fp)
		g.current = existing.Fingerprint
		return TransitionResult{Kind: TransitionRevisited, Fingerprint: fp}
	}

	if nearest, ok := g.nearestBySimilarity(elements); ok {
		g.addEdge(actionType, elementText, nearest)
		g.current = nearest
		return TransitionResult{Kind: TransitionRevisited, Fingerprint: nearest}
	}

	depth := 0
	if curNode != nil {
		depth = curNode.Depth + 1
	}
	g.nodes[fp] = newNode(fp, depth, screenType, elements, icons, hints, screenshot)
	g.addEdge(actionType, elementText, fp)
	g.current = fp
	return TransitionResult{Kind: TransitionNewScreen, Fingerprint: fp}
}

func (g *NavigationGraph) addEdge(actionType ActionType, elementText string, to ScreenFingerprint) {
	g.edges = append(g.edges, GraphEdge{
		FromFingerprint: g.current,
		ToFingerprint:   to,
		ActionType:      actionType,
		ElementText:     elementText,
	})
}

// nearestBySimilarity finds the best-matching known node by Jaccard
// similarity against elements, returning ok=false if none clears the
// threshold. Ties are broken by map iteration order since the spec only
// requires "nearest-match wins", not a specific tiebreak.
func (g *NavigationGraph) nearestBySimilarity(elements []TapPoint) (ScreenFingerprint, bool) {
	var best ScreenFingerprint
	bestScore := 0.0
	found := false
	for fp, node := range g.nodes {
		s := jaccardSimilarity(elements, node.Elements)
		if s >= jaccardThreshold && s > bestScore {
			bestScore = s
			best = fp
			found = true
		}
	}
	return best, found
}

// MarkElementVisited adds text to the visited set for fp. Only ever
// called from dive phase (spec invariant 7).
func (g *NavigationGraph) MarkElementVisited(fp ScreenFingerprint, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.visitedElements[text] = struct{}{}
	}
}

// UnvisitedElements returns node.Elements minus visitedElements[fp].
func (g *NavigationGraph) UnvisitedElements(fp ScreenFingerprint) []TapPoint {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[fp]
	if !ok {
		return nil
	}
	out := make([]TapPoint, 0, len(n.Elements))
	for _, e := range n.Elements {
		if _, visited := n.visitedElements[e.Text]; !visited {
			out = append(out, e)
		}
	}
	return out
}

// MergeScrolledElements unions newElements' texts into node.Elements,
// returning the count of texts that were not already present. Unknown
// fingerprints return 0 rather than erroring (graph operations are
// total functions per spec §7).
func (g *NavigationGraph) MergeScrolledElements(fp ScreenFingerprint, newElements []TapPoint) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[fp]
	if !ok {
		return 0
	}
	existing := make(map[string]struct{}, len(n.Elements))
	for _, e := range n.Elements {
		existing[e.Text] = struct{}{}
	}

	novel := 0
	for _, e := range newElements {
		if _, ok := existing[e.Text]; !ok {
			n.Elements = append(n.Elements, e)
			existing[e.Text] = struct{}{}
			novel++
		}
	}
	return novel
}

// ScrollCount returns the number of scrolls recorded for fp.
func (g *NavigationGraph) ScrollCount(fp ScreenFingerprint) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[fp]; ok {
		return n.scrollCount
	}
	return 0
}

// IncrementScrollCount bumps fp's scroll counter by one.
func (g *NavigationGraph) IncrementScrollCount(fp ScreenFingerprint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.scrollCount++
	}
}

// RecordScoutResult stores the outcome of probing text on fp. Never
// touches visitedElements (spec invariant 7).
func (g *NavigationGraph) RecordScoutResult(fp ScreenFingerprint, text string, outcome ScoutOutcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.scoutResults[text] = outcome
	}
}

// ScoutResults returns a copy of fp's recorded scout outcomes.
func (g *NavigationGraph) ScoutResults(fp ScreenFingerprint) map[string]ScoutOutcome {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[fp]
	if !ok {
		return nil
	}
	out := make(map[string]ScoutOutcome, len(n.scoutResults))
	for k, v := range n.scoutResults {
		out[k] = v
	}
	return out
}

// TraversalPhase returns fp's current phase.
func (g *NavigationGraph) TraversalPhase(fp ScreenFingerprint) TraversalPhase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[fp]; ok {
		return n.traversalPhase
	}
	return PhaseExhausted
}

// SetTraversalPhase advances fp's phase. Callers are expected to only
// move forward (scout -> dive -> exhausted, spec invariant 8); a
// request for a phase at or before the current one is silently ignored
// rather than reported, since graph operations are total.
func (g *NavigationGraph) SetTraversalPhase(fp ScreenFingerprint, phase TraversalPhase) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		if phase > n.traversalPhase {
			n.traversalPhase = phase
		}
	}
}

// SetScreenPlan caches a built plan for fp.
func (g *NavigationGraph) SetScreenPlan(fp ScreenFingerprint, plan []RankedElement) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.screenPlan = plan
		n.hasScreenPlan = true
	}
}

// ScreenPlan returns fp's cached plan and whether one is set.
func (g *NavigationGraph) ScreenPlan(fp ScreenFingerprint) ([]RankedElement, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[fp]
	if !ok {
		return nil, false
	}
	return n.screenPlan, n.hasScreenPlan
}

// ClearScreenPlan invalidates fp's cached plan, used after a scroll
// reveals novel elements.
func (g *NavigationGraph) ClearScreenPlan(fp ScreenFingerprint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.screenPlan = nil
		n.hasScreenPlan = false
	}
}

// NextPlannedElement returns the highest-scored planned element whose
// text isn't already visited, or nil if the plan is empty/exhausted.
func (g *NavigationGraph) NextPlannedElement(fp ScreenFingerprint) *TapPoint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[fp]
	if !ok {
		return nil
	}
	for _, re := range n.screenPlan {
		if _, visited := n.visitedElements[re.Point.Text]; !visited {
			p := re.Point
			return &p
		}
	}
	return nil
}

// SetCurrentFingerprint resynchronises the graph's notion of "where am
// I" after a physical backtrack, without creating nodes or edges.
func (g *NavigationGraph) SetCurrentFingerprint(fp ScreenFingerprint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = fp
}

// Current returns the current fingerprint.
func (g *NavigationGraph) Current() ScreenFingerprint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// Root returns the root fingerprint, stable once Start has been called.
func (g *NavigationGraph) Root() ScreenFingerprint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.root
}

// Started reports whether Start has been called.
func (g *NavigationGraph) Started() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.started
}

// Node returns a copy of the node's immutable fields plus its current
// depth/screenType; a zero GraphNode and false if fp is unknown.
func (g *NavigationGraph) Node(fp ScreenFingerprint) (GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[fp]
	if !ok {
		return GraphNode{}, false
	}
	return *n, true
}

// NodeCount returns the number of nodes currently in the graph.
func (g *NavigationGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges currently in the graph.
func (g *NavigationGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Finalize returns an immutable snapshot of the graph.
func (g *NavigationGraph) Finalize() GraphSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make(map[ScreenFingerprint]GraphNode, len(g.nodes))
	for fp, n := range g.nodes {
		nodes[fp] = *n
	}
	edges := make([]GraphEdge, len(g.edges))
	copy(edges, g.edges)

	return GraphSnapshot{Nodes: nodes, Edges: edges, RootFingerprint: g.root}
}
