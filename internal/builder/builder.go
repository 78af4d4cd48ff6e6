// Package builder defines the strategy contract shared by all theme build
// toolchains and the registry that resolves one strategy per theme.
package builder

import (
	"context"
	"time"

	"github.com/coralpress/themebuild/internal/registry"
)

// Builder is a family-specific build strategy. The driver invokes the
// operations in strict order: Detect, then AutoRepair, then Build or Watch.
// Build and Watch are never invoked for a path Detect did not claim.
type Builder interface {
	// Name identifies the strategy in results and messages.
	Name() string

	// Detect reports whether this strategy applies to the theme path. It
	// must be pure and cheap: file-existence and shallow content checks
	// only, no filesystem mutation.
	Detect(themePath string) bool

	// AutoRepair bootstraps missing build prerequisites best-effort. An
	// error means the theme is unrecoverable and must be skipped. Repeated
	// runs with no intervening external change converge to the same
	// filesystem end-state.
	AutoRepair(ctx context.Context, theme registry.ThemeDescriptor, sess *Session) error

	// Build runs the full compile pipeline: install-if-needed, compile,
	// deploy compiled output, invalidate caches. No rollback of partial
	// output is guaranteed on failure.
	Build(ctx context.Context, theme registry.ThemeDescriptor, sess *Session) error

	// Watch hands control to the toolchain's long-running watch process
	// and blocks until it exits. Cancelling ctx terminates the watcher.
	Watch(ctx context.Context, theme registry.ThemeDescriptor, sess *Session) error
}

// Result records the outcome of one processed theme.
type Result struct {
	ThemeCode   string
	Success     bool
	BuilderName string
	Duration    time.Duration
	Message     string
}
