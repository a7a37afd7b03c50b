package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration mistakes detected at pipeline entry,
// before any pixel work. Both are surfaced to the caller unchanged and are
// never retried.
var (
	// ErrInvalidChannel reports a channel selector outside the ten
	// recognized codes (l, a, b, h, s, v, c, m, y, k).
	ErrInvalidChannel = errors.New("invalid channel selector")

	// ErrInvalidImage reports a missing image or one with non-positive
	// dimensions.
	ErrInvalidImage = errors.New("invalid image")
)

// StageError wraps an unexpected failure inside a pipeline stage with the
// name of the stage that failed, so a batch driver can report which part of
// the extraction broke without inspecting internal state.
type StageError struct {
	Stage string // "project", "blur", "threshold", or "fill"
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %q failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
