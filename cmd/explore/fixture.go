package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	explorer "github.com/mirroir/uiexplorer"
)

// fixtureElement is one JSON-scripted TapPoint.
type fixtureElement struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// fixtureScreen is one node of the scripted app graph: the elements
// visible on it, the hints its PlatformStrategy should see, and where
// tapping each element's text leads.
type fixtureScreen struct {
	Hints         []string          `json:"hints"`
	Elements      []fixtureElement  `json:"elements"`
	ScrollReveals []fixtureElement  `json:"scrollReveals"`
	Transitions   map[string]string `json:"transitions"`
}

// fixtureApp is the root of a JSON-scripted demo app used in place of a
// real device connection, grounded on the ancestor CLI's file-batch
// driver (cmd/caire/main.go) generalized from "read an image path" to
// "read a scripted UI graph path".
type fixtureApp struct {
	Start   string                   `json:"start"`
	Screens map[string]fixtureScreen `json:"screens"`
}

func loadFixture(path string) (*fixtureApp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var app fixtureApp
	if err := json.NewDecoder(f).Decode(&app); err != nil {
		return nil, err
	}
	if _, ok := app.Screens[app.Start]; !ok {
		return nil, fmt.Errorf("fixture: start screen %q not defined", app.Start)
	}
	return &app, nil
}

// fixtureDriver implements both explorer.Describer and
// explorer.InputActuator against an in-memory fixtureApp, letting the
// CLI run a full exploration deterministically without a real device.
type fixtureDriver struct {
	app       *fixtureApp
	current   string
	stack     []string
	revealed  map[string]int // screen id -> how many scrollReveals entries exposed so far
}

func newFixtureDriver(app *fixtureApp) *fixtureDriver {
	return &fixtureDriver{
		app:      app,
		current:  app.Start,
		stack:    []string{app.Start},
		revealed: map[string]int{},
	}
}

func (d *fixtureDriver) Describe(ctx context.Context, skipOCR bool) *explorer.ScreenCapture {
	screen, ok := d.app.Screens[d.current]
	if !ok {
		return nil
	}
	elements := make([]explorer.TapPoint, 0, len(screen.Elements)+d.revealed[d.current])
	for _, e := range screen.Elements {
		elements = append(elements, explorer.TapPoint{Text: e.Text, X: e.X, Y: e.Y, Confidence: 1})
	}
	for i := 0; i < d.revealed[d.current] && i < len(screen.ScrollReveals); i++ {
		e := screen.ScrollReveals[i]
		elements = append(elements, explorer.TapPoint{Text: e.Text, X: e.X, Y: e.Y, Confidence: 1})
	}
	return &explorer.ScreenCapture{Elements: elements, Hints: screen.Hints}
}

func (d *fixtureDriver) Tap(ctx context.Context, x, y float64) string {
	screen := d.app.Screens[d.current]
	var target string
	best := math.MaxFloat64
	for _, e := range append(append([]fixtureElement(nil), screen.Elements...), screen.ScrollReveals...) {
		dist := math.Hypot(e.X-x, e.Y-y)
		if dist < best {
			best, target = dist, e.Text
		}
	}
	if target == "" {
		return "no element near tap point"
	}
	dest, ok := screen.Transitions[target]
	if !ok {
		return "" // tapping a non-navigating element is a legitimate no-op
	}
	d.current = dest
	d.stack = append(d.stack, dest)
	return ""
}

func (d *fixtureDriver) Swipe(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) string {
	d.revealed[d.current]++
	return ""
}

func (d *fixtureDriver) DoubleTap(ctx context.Context, x, y float64) string { return d.Tap(ctx, x, y) }
func (d *fixtureDriver) LongPress(ctx context.Context, x, y float64) string { return "" }

func (d *fixtureDriver) PressKey(ctx context.Context, key string, modifiers []string) string {
	if len(d.stack) <= 1 {
		return "already at root"
	}
	d.stack = d.stack[:len(d.stack)-1]
	d.current = d.stack[len(d.stack)-1]
	return ""
}

func (d *fixtureDriver) TypeText(ctx context.Context, text string) string { return "" }
func (d *fixtureDriver) Shake(ctx context.Context) string                 { return "" }
func (d *fixtureDriver) LaunchApp(ctx context.Context, name string) string {
	d.current, d.stack = d.app.Start, []string{d.app.Start}
	return ""
}
func (d *fixtureDriver) OpenURL(ctx context.Context, url string) string { return "" }
