/*
errors.go - Error types for the compensation model

PURPOSE:
  The model follows a sanitize-never-reject policy, so validation problems
  are not errors. The one condition callers must react to is a supervisor
  roster at capacity: the caller has to pick another supervisor.

  A worker on the wrong shift is NOT an error. AddWorker ignores it and
  reports added=false with a nil error.

USAGE:
  added, err := supervisor.AddWorker(worker)
  if errors.Is(err, payroll.ErrRosterFull) {
      // choose another supervisor
  }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrRosterFull is returned when a worker is added to a supervisor whose
// worker count already reached the roster capacity.
var ErrRosterFull = errors.New("roster full")

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RosterFullError provides the capacity that was hit.
type RosterFullError struct {
	Supervisor  string
	Capacity    int
	WorkerCount int
}

func (e *RosterFullError) Error() string {
	return fmt.Sprintf("roster full: supervisor %q has %d of %d workers",
		e.Supervisor, e.WorkerCount, e.Capacity)
}

func (e *RosterFullError) Unwrap() error {
	return ErrRosterFull
}
