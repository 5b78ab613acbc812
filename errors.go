package explorer

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// ErrDescribeFailed is the transient error surfaced when the describer
// returns nil, i.e. an OCR capture failure. Session preconditions
// (inactive, already finalized) use the nil-sentinel convention
// documented on Capture/Finalize instead of an error type, matching
// Describer's own "nil means failure, no error channel" contract.
var ErrDescribeFailed = errors.New("explorer: failed to capture screen")

// wrapDescribeErr adds step context to a describer failure without
// promoting it out of the "transient" taxonomy (§7): callers still pause
// and may retry.
func wrapDescribeErr(reason string) error {
	return pkgerrors.Wrap(ErrDescribeFailed, reason)
}

// wrapActuatorErr adds context to an input actuator failure string,
// which external actuators report as a bare string rather than an
// error (see interfaces.go).
func wrapActuatorErr(action string, msg string) error {
	return pkgerrors.Wrapf(errors.New(msg), "explorer: action %s failed", action)
}
