package explorer

import "sync"

// ExplorationMode reports whether a session is chasing an explicit goal
// or surveying a app opportunistically.
type ExplorationMode int

const (
	ModeDiscovery ExplorationMode = iota
	ModeGoalDriven
)

// ActionLogEntry records one capture attempt, accepted or not.
type ActionLogEntry struct {
	ActionType    ActionType
	ArrivedVia    string
	WasDuplicate  bool
	ElementText   string
}

// ExploredScreenCapture is one accepted capture retained in session
// order.
type ExploredScreenCapture struct {
	Elements         []TapPoint
	Hints            []string
	Icons            []Icon
	ScreenshotBase64 string
	ActionType       ActionType
	ArrivedVia       string
}

// SessionData is the immutable result of ExplorationSession.Finalize.
type SessionData struct {
	AppName      string
	Goal         string
	Screens      []ExploredScreenCapture
	Actions      []ActionLogEntry
	GraphSnapshot GraphSnapshot
}

// ExplorationSession owns the per-run lifecycle: active flag, the
// (optional) goal queue for manifest mode, the action log, capture
// deduplication and finalization, grounded on the ancestor Image{Src,
// Dst, Workers} + Processor.Execute's start/run/finalize shape
// (exec.go).
type ExplorationSession struct {
	mu sync.RWMutex

	appName string
	goal    string
	goals   []string

	active  bool
	screens []ExploredScreenCapture
	actions []ActionLogEntry
	graph   *NavigationGraph

	lastCapture    []TapPoint
	lastTransition TransitionResult
}

// NewSession returns an inactive session; call Start before Capture.
func NewSession() *ExplorationSession {
	return &ExplorationSession{graph: NewNavigationGraph()}
}

// Start resets session state for a new run. goals, if non-empty, puts
// the session in manifest/goal-driven mode: its first entry becomes the
// current goal and the rest are queued for Finalize to advance through;
// otherwise goal alone (possibly empty) determines CurrentMode.
func (s *ExplorationSession) Start(appName, goal string, goals []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appName = appName
	s.goal = goal
	s.goals = append([]string(nil), goals...)
	if len(s.goals) > 0 {
		s.goal = s.goals[0]
		s.goals = s.goals[1:]
	}
	s.active = true
	s.screens = nil
	s.actions = nil
	s.lastCapture = nil
	s.graph = NewNavigationGraph()
}

// CurrentMode reports whether this session is goal-driven (an explicit
// goal or non-empty goal queue) or free discovery.
func (s *ExplorationSession) CurrentMode() ExplorationMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.goals) > 0 || s.goal != "" {
		return ModeGoalDriven
	}
	return ModeDiscovery
}

// Graph exposes the session's NavigationGraph for the explorer to drive.
func (s *ExplorationSession) Graph() *NavigationGraph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Active reports whether the session is currently running.
func (s *ExplorationSession) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ScreenCount returns the number of accepted screens so far.
func (s *ExplorationSession) ScreenCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.screens)
}

// Actions returns a copy of the action log.
func (s *ExplorationSession) Actions() []ActionLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ActionLogEntry, len(s.actions))
	copy(out, s.actions)
	return out
}

// Capture records one OCR pass. It returns false (without touching the
// graph or screen list) when the new screen is a near-duplicate (Jaccard
// >= 0.80) of the immediately previous capture in this session, per spec
// §4.7 step 1 / invariant 5 / S4. Otherwise it forwards to the graph
// (Start on the very first capture, RecordTransition afterwards),
// appends the accepted screen, logs the action and returns true.
func (s *ExplorationSession) Capture(elements []TapPoint, hints []string, icons []Icon, actionType ActionType, arrivedVia string, screenshot string, screenType ScreenType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastCapture != nil && jaccardSimilarity(elements, s.lastCapture) >= jaccardThreshold {
		s.actions = append(s.actions, ActionLogEntry{
			ActionType:   actionType,
			ArrivedVia:   arrivedVia,
			WasDuplicate: true,
			ElementText:  arrivedVia,
		})
		return false
	}

	if !s.graph.Started() {
		fp := s.graph.Start(elements, icons, hints, screenshot, screenType)
		s.lastTransition = TransitionResult{Kind: TransitionNewScreen, Fingerprint: fp}
	} else {
		s.lastTransition = s.graph.RecordTransition(elements, icons, hints, screenshot, actionType, arrivedVia, screenType)
	}

	s.screens = append(s.screens, ExploredScreenCapture{
		Elements:         elements,
		Hints:            hints,
		Icons:            icons,
		ScreenshotBase64: screenshot,
		ActionType:       actionType,
		ArrivedVia:       arrivedVia,
	})
	s.actions = append(s.actions, ActionLogEntry{
		ActionType:  actionType,
		ArrivedVia:  arrivedVia,
		ElementText: arrivedVia,
	})
	s.lastCapture = elements
	return true
}

// LastTransition reports what the most recent Capture call did to the
// graph (duplicate/revisited/newScreen), letting DFSExplorer/BFSExplorer
// decide stack bookkeeping without reaching into the graph directly.
func (s *ExplorationSession) LastTransition() TransitionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTransition
}

// Finalize returns the session's result, or nil if the session is
// inactive (double-finalize guard, spec §7). In manifest mode, if goals
// remain it advances to the next goal and resets per-goal state while
// keeping the session active; otherwise it deactivates.
func (s *ExplorationSession) Finalize() *SessionData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}

	data := &SessionData{
		AppName:       s.appName,
		Goal:          s.goal,
		Screens:       append([]ExploredScreenCapture(nil), s.screens...),
		Actions:       append([]ActionLogEntry(nil), s.actions...),
		GraphSnapshot: s.graph.Finalize(),
	}

	if len(s.goals) > 0 {
		s.goal = s.goals[0]
		s.goals = s.goals[1:]
		s.screens = nil
		s.actions = nil
		s.lastCapture = nil
		s.graph = NewNavigationGraph()
		s.active = true
	} else {
		s.active = false
	}

	return data
}
