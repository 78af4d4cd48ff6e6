// Package fallback builds themes that bring their own npm toolchain: any
// theme with a root package.json. Custom build and watch commands can be
// configured per theme code.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/config"
	"github.com/coralpress/themebuild/internal/deps"
	"github.com/coralpress/themebuild/internal/housekeeping"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/registry"
	"github.com/coralpress/themebuild/internal/shell"
)

// rebuildDebounce coalesces bursts of filesystem events into one rebuild.
const rebuildDebounce = 500 * time.Millisecond

// Builder runs a theme's own npm scripts, or configured override commands.
type Builder struct {
	root   string
	cfg    *config.Config
	runner shell.Runner
	deps   *deps.Checker
}

// New creates the fallback strategy for a project root.
func New(root string, cfg *config.Config, runner shell.Runner, checker *deps.Checker) *Builder {
	return &Builder{root: root, cfg: cfg, runner: runner, deps: checker}
}

// Name identifies the strategy.
func (b *Builder) Name() string { return "custom" }

// Detect claims themes with their own package.json. Registered last, so it
// only sees themes no specialized family claimed.
func (b *Builder) Detect(themePath string) bool {
	info, err := os.Stat(filepath.Join(themePath, "package.json"))
	return err == nil && !info.IsDir()
}

// packageScripts is the shallow slice of package.json the builder inspects.
type packageScripts struct {
	Scripts map[string]string `json:"scripts"`
}

func (b *Builder) scripts(themePath string) (packageScripts, error) {
	data, err := os.ReadFile(filepath.Join(themePath, "package.json"))
	if err != nil {
		return packageScripts{}, err
	}
	var pkg packageScripts
	if err := json.Unmarshal(data, &pkg); err != nil {
		return packageScripts{}, err
	}
	return pkg, nil
}

func (b *Builder) buildRoot(themePath string) deps.BuildRoot {
	return deps.BuildRoot{
		Dir: themePath,
		Manifest: deps.ScaffoldFile{
			// The manifest made Detect claim this theme; there is no
			// template for a theme-specific toolchain.
			Path: filepath.Join(themePath, "package.json"),
		},
		InstallDir: filepath.Join(themePath, "node_modules"),
		InstallCommand: shell.Command{
			Name: b.cfg.PackageManagerBinary(),
			Args: []string{"install"},
			Dir:  themePath,
		},
	}
}

// AutoRepair installs the theme's own dependencies when missing.
func (b *Builder) AutoRepair(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	sess.Reporter.Progressf(messages.BuilderStepDepsCheck)
	return b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath))
}

// Build runs the configured override command or the theme's npm build
// script, then deploys and invalidates caches.
func (b *Builder) Build(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath)); err != nil {
		return err
	}

	cmd, err := b.buildCommand(theme, sess)
	if err != nil {
		return err
	}

	sess.Reporter.Progressf(messages.BuilderStepHousekeeping)
	builder.CleanOutputs(sess,
		housekeeping.NewStaticAssetCleaner(b.root, theme.Code),
		housekeeping.NewPreprocessedCleaner(b.root, theme.Code),
	)

	sess.Reporter.Progressf(messages.BuilderStepCompile)
	if _, err := b.runner.Run(ctx, cmd); err != nil {
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

// Watch streams the theme's watch command when one exists; otherwise it
// watches the theme's web sources and rebuilds on change until ctx is
// cancelled.
func (b *Builder) Watch(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot(theme.AbsolutePath)); err != nil {
		return err
	}

	if cmd, ok := b.watchCommand(theme, sess); ok {
		if err := b.runner.Stream(ctx, cmd, sess.Stdout, sess.Stderr); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf(messages.NpmWatchFailedFmt, err)
		}
		return nil
	}

	sess.Reporter.Warnf(messages.FallbackNoWatchFmt, theme.Code)
	return b.watchSources(ctx, theme, sess)
}

// buildCommand resolves the override or npm build script for a theme.
func (b *Builder) buildCommand(theme registry.ThemeDescriptor, sess *builder.Session) (shell.Command, error) {
	if override, ok := b.cfg.Override(theme.Code); ok {
		return overrideCommand(override.BuildCommand, theme.AbsolutePath, sess), nil
	}
	pkg, err := b.scripts(theme.AbsolutePath)
	if err != nil {
		return shell.Command{}, err
	}
	if _, ok := pkg.Scripts["build"]; !ok {
		return shell.Command{}, fmt.Errorf("%w: "+messages.FallbackNoBuildScriptFmt, deps.ErrPrerequisite, theme.AbsolutePath)
	}
	return b.scriptCommand(theme, sess, "build"), nil
}

func (b *Builder) watchCommand(theme registry.ThemeDescriptor, sess *builder.Session) (shell.Command, bool) {
	if override, ok := b.cfg.Override(theme.Code); ok && len(override.WatchCommand) > 0 {
		return overrideCommand(override.WatchCommand, theme.AbsolutePath, sess), true
	}
	pkg, err := b.scripts(theme.AbsolutePath)
	if err == nil {
		if _, ok := pkg.Scripts["watch"]; ok {
			return b.scriptCommand(theme, sess, "watch"), true
		}
	}
	return shell.Command{}, false
}

func (b *Builder) scriptCommand(theme registry.ThemeDescriptor, sess *builder.Session, script string) shell.Command {
	return shell.Command{
		Name: b.cfg.PackageManagerBinary(),
		Args: []string{"run", script},
		Dir:  theme.AbsolutePath,
		Env:  sess.Env,
	}
}

func overrideCommand(argv []string, dir string, sess *builder.Session) shell.Command {
	cmd := shell.Command{Name: argv[0], Dir: dir, Env: sess.Env}
	if len(argv) > 1 {
		cmd.Args = argv[1:]
	}
	return cmd
}

// watchSources rebuilds the theme whenever files under web/ change,
// debounced, until the context is cancelled.
func (b *Builder) watchSources(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(messages.SourceWatchCreateFmt, err)
	}
	defer func() { _ = watcher.Close() }()

	webDir := filepath.Join(theme.AbsolutePath, "web")
	if err := addRecursive(watcher, webDir); err != nil {
		return fmt.Errorf(messages.SourceWatchAddFmt, webDir, err)
	}

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(rebuildDebounce)
			} else {
				debounce.Reset(rebuildDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			sess.Reporter.Progressf(messages.BuilderStepWatchRebuild)
			if err := b.Build(ctx, theme, sess); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Keep watching; the next change may fix the build.
				sess.Reporter.Warnf(messages.BuilderStepWatchRecovered+": %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sess.Reporter.Warnf(messages.SourceWatchErrorFmt, err)
		}
	}
}

// addRecursive registers dir and every subdirectory with the watcher.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
