package explorer

import "context"

// ScreenCapture is what a Describer returns for a single OCR pass. A nil
// *ScreenCapture (not an error) signals describe failure, per §6/§7: the
// describer has no error channel, only a presence/absence signal.
type ScreenCapture struct {
	Elements        []TapPoint
	Hints           []string
	Icons           []Icon
	ScreenshotBase64 string
}

// Describer is the screen-describing pipeline: raw screenshot -> OCR ->
// TapPoint list. It is an external collaborator; this package only
// consumes its output. SkipOCR lets a caller request hints/icons without
// re-running (possibly expensive) OCR, used by alert re-checks that only
// need a cheap re-read.
type Describer interface {
	Describe(ctx context.Context, skipOCR bool) *ScreenCapture
}

// InputActuator is the physical input device: tap/swipe/press-key/etc.
// Every method returns a non-empty error string on failure and an empty
// string on success, matching the "nil on success or an error string"
// contract of §6 without forcing Go's error type onto an interface whose
// origin is explicitly string-typed in the spec.
type InputActuator interface {
	Tap(ctx context.Context, x, y float64) string
	Swipe(ctx context.Context, fromX, fromY, toX, toY float64, durationMs int) string
	DoubleTap(ctx context.Context, x, y float64) string
	LongPress(ctx context.Context, x, y float64) string
	PressKey(ctx context.Context, key string, modifiers []string) string
	TypeText(ctx context.Context, text string) string
	Shake(ctx context.Context) string
	LaunchApp(ctx context.Context, name string) string
	OpenURL(ctx context.Context, url string) string
}
