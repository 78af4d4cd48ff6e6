package builder

import (
	"io"

	"github.com/coralpress/themebuild/internal/report"
)

// Session carries invocation-scoped state through the per-theme loop. It
// replaces hidden process globals: one-time bootstrap steps are gated by the
// session's run ledger and die with the invocation.
type Session struct {
	// Env is the full environment passed to toolchain processes.
	Env []string
	// DryRun makes housekeeping report instead of remove.
	DryRun bool
	// Reporter receives progress and warnings.
	Reporter report.Reporter
	// Stdout and Stderr receive pass-through output from long-running
	// watch processes.
	Stdout io.Writer
	Stderr io.Writer

	ranSteps map[string]struct{}
}

// NewSession creates a session for one invocation.
func NewSession(reporter report.Reporter) *Session {
	if reporter == nil {
		reporter = report.Discard{}
	}
	return &Session{
		Reporter: reporter,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
		ranSteps: make(map[string]struct{}),
	}
}

// HasRun reports whether the named step already ran in this invocation.
func (s *Session) HasRun(stepID string) bool {
	_, ok := s.ranSteps[stepID]
	return ok
}

// MarkRun records that the named step ran.
func (s *Session) MarkRun(stepID string) {
	s.ranSteps[stepID] = struct{}{}
}

// RunOnce executes fn at most once per invocation for the given step. The
// step is recorded only on success, so a failed bootstrap may be retried by
// a later theme in the same invocation.
func (s *Session) RunOnce(stepID string, fn func() error) error {
	if s.HasRun(stepID) {
		return nil
	}
	if err := fn(); err != nil {
		return err
	}
	s.MarkRun(stepID)
	return nil
}
