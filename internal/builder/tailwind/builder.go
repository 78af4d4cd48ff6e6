// Package tailwind builds themes that carry their own Tailwind CSS source
// tree under web/tailwind.
package tailwind

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/config"
	"github.com/coralpress/themebuild/internal/deps"
	"github.com/coralpress/themebuild/internal/housekeeping"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/registry"
	"github.com/coralpress/themebuild/internal/shell"
)

// Builder compiles a theme with the npm scripts of its web/tailwind tree.
type Builder struct {
	root   string
	cfg    *config.Config
	runner shell.Runner
	deps   *deps.Checker
}

// New creates the Tailwind strategy for a project root.
func New(root string, cfg *config.Config, runner shell.Runner, checker *deps.Checker) *Builder {
	return &Builder{root: root, cfg: cfg, runner: runner, deps: checker}
}

// Name identifies the strategy.
func (b *Builder) Name() string { return "tailwind" }

// Detect claims themes with a web/tailwind source directory.
func (b *Builder) Detect(themePath string) bool {
	info, err := os.Stat(sourceDir(themePath))
	return err == nil && info.IsDir()
}

func sourceDir(themePath string) string {
	return filepath.Join(themePath, "web", "tailwind")
}

// buildRoot describes the theme-local Tailwind prerequisites.
func (b *Builder) buildRoot(themePath string) deps.BuildRoot {
	dir := sourceDir(themePath)
	return deps.BuildRoot{
		Dir: dir,
		Manifest: deps.ScaffoldFile{
			Path:     filepath.Join(dir, "package.json"),
			Template: "tailwind/package.json",
		},
		InstallDir: filepath.Join(dir, "node_modules"),
		InstallCommand: shell.Command{
			Name: b.cfg.PackageManagerBinary(),
			Args: []string{"install"},
			Dir:  dir,
		},
		Scaffolds: []deps.ScaffoldFile{
			{
				Path:     filepath.Join(dir, "tailwind.config.js"),
				Template: "tailwind/tailwind.config.js",
				Optional: true,
			},
		},
	}
}

// AutoRepair bootstraps the theme's Tailwind source tree.
func (b *Builder) AutoRepair(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	sess.Reporter.Progressf(messages.BuilderStepDepsCheck)
	return b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath))
}

// Build installs dependencies if needed, runs the theme's build script,
// deploys the compiled assets and invalidates caches.
func (b *Builder) Build(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath)); err != nil {
		return err
	}

	sess.Reporter.Progressf(messages.BuilderStepHousekeeping)
	builder.CleanOutputs(sess,
		housekeeping.NewStaticAssetCleaner(b.root, theme.Code),
		housekeeping.NewPreprocessedCleaner(b.root, theme.Code),
	)

	sess.Reporter.Progressf(messages.BuilderStepCompile)
	if _, err := b.runner.Run(ctx, b.scriptCommand(theme, sess, "build")); err != nil {
		return fmt.Errorf(messages.NpmBuildFailedFmt, err)
	}

	if err := builder.Deploy(ctx, b.runner, b.cfg.MagentoBinary(b.root), b.root, theme.Code, sess); err != nil {
		return err
	}

	builder.CleanOutputs(sess, housekeeping.NewSymlinkCleaner(b.root, theme.Code))
	if b.cfg.Clean.PageCacheEnabled() {
		builder.CleanOutputs(sess, housekeeping.NewPageCacheCleaner(b.root))
	}
	return nil
}

// Watch hands control to the theme's npm watch script until the context is
// cancelled.
func (b *Builder) Watch(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath)); err != nil {
		return err
	}
	if err := b.runner.Stream(ctx, b.scriptCommand(theme, sess, "watch"), sess.Stdout, sess.Stderr); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf(messages.NpmWatchFailedFmt, err)
	}
	return nil
}

func (b *Builder) scriptCommand(theme registry.ThemeDescriptor, sess *builder.Session, script string) shell.Command {
	return shell.Command{
		Name: b.cfg.PackageManagerBinary(),
		Args: []string{"run", script},
		Dir:  sourceDir(theme.AbsolutePath),
		Env:  sess.Env,
	}
}
