package explorer

import "context"

// scriptedScreen is one node of a tiny in-memory app graph used to drive
// DFSExplorer/BFSExplorer deterministically in tests, playing the same
// role as cmd/explore's JSON fixture driver but defined directly in this
// package (the fixture driver lives in package main and can't be
// imported here).
type scriptedScreen struct {
	elements []TapPoint
	hints    []string
}

// scriptedDriver implements both Describer and InputActuator over a
// small hand-built screen graph: Tap transitions to whatever screen is
// registered for the tapped element's text (a no-op tap if none is
// registered), and PressKey("[", ...) walks back up the parent chain.
type scriptedDriver struct {
	screens     map[string]scriptedScreen
	transitions map[string]map[string]string
	parent      map[string]string
	current     string

	taps []string
}

func (d *scriptedDriver) Describe(ctx context.Context, skipOCR bool) *ScreenCapture {
	s, ok := d.screens[d.current]
	if !ok {
		return nil
	}
	return &ScreenCapture{Elements: s.elements, Hints: s.hints}
}

func (d *scriptedDriver) Tap(ctx context.Context, x, y float64) string {
	s, ok := d.screens[d.current]
	if !ok {
		return "no such screen: " + d.current
	}
	for _, e := range s.elements {
		if e.X == x && e.Y == y {
			d.taps = append(d.taps, e.Text)
			if target, ok := d.transitions[d.current][e.Text]; ok {
				d.current = target
			}
			return ""
		}
	}
	return "no element at given coordinates"
}

func (d *scriptedDriver) Swipe(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) string {
	return ""
}

func (d *scriptedDriver) DoubleTap(ctx context.Context, x, y float64) string { return "" }
func (d *scriptedDriver) LongPress(ctx context.Context, x, y float64) string { return "" }

func (d *scriptedDriver) PressKey(ctx context.Context, key string, modifiers []string) string {
	if key == "[" {
		if parent, ok := d.parent[d.current]; ok {
			d.current = parent
		}
	}
	return ""
}

func (d *scriptedDriver) TypeText(ctx context.Context, text string) string       { return "" }
func (d *scriptedDriver) Shake(ctx context.Context) string                      { return "" }
func (d *scriptedDriver) LaunchApp(ctx context.Context, name string) string     { return "" }
func (d *scriptedDriver) OpenURL(ctx context.Context, url string) string        { return "" }

// newTwoLevelDriver builds a 2-screen app: a root with two navigation
// items, one of which ("Item1") leads to a terminal-ish leaf screen
// carrying only a non-navigable element ("On", decoration by length).
func newTwoLevelDriver() *scriptedDriver {
	root := scriptedScreen{elements: []TapPoint{
		{Text: "Item1", X: 10, Y: 100},
		{Text: "Item2", X: 10, Y: 200},
	}}
	leaf := scriptedScreen{elements: []TapPoint{
		{Text: "On", X: 10, Y: 100},
	}}
	return &scriptedDriver{
		screens: map[string]scriptedScreen{
			"root": root,
			"leaf": leaf,
		},
		transitions: map[string]map[string]string{
			"root": {"Item1": "leaf"},
		},
		parent:  map[string]string{"leaf": "root"},
		current: "root",
	}
}

// zeroScrollBudget is DefaultBudget with scrolling disabled, so a
// no-navigation-elements screen backtracks immediately instead of
// swiping first, keeping test traces short and deterministic.
func zeroScrollBudget() ExplorationBudget {
	b := DefaultBudget()
	b.ScrollLimit = 0
	return b
}
