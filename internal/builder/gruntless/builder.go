// Package gruntless builds standard themes whose LESS sources are compiled
// by the project-level Grunt toolchain.
package gruntless

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/config"
	"github.com/coralpress/themebuild/internal/deps"
	"github.com/coralpress/themebuild/internal/housekeeping"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/registry"
	"github.com/coralpress/themebuild/internal/shell"
)

// readyStep gates the shared project-root prerequisite bootstrap so it runs
// at most once per invocation no matter how many themes use this family.
const readyStep = "gruntless:prerequisites"

// Builder compiles a theme with grunt exec + grunt less from the project root.
type Builder struct {
	root   string
	cfg    *config.Config
	runner shell.Runner
	deps   *deps.Checker
}

// New creates the grunt-LESS strategy for a project root.
func New(root string, cfg *config.Config, runner shell.Runner, checker *deps.Checker) *Builder {
	return &Builder{root: root, cfg: cfg, runner: runner, deps: checker}
}

// Name identifies the strategy.
func (b *Builder) Name() string { return "grunt-less" }

// Detect claims themes with LESS sources under web/css and no Tailwind
// source directory.
func (b *Builder) Detect(themePath string) bool {
	if info, err := os.Stat(filepath.Join(themePath, "web", "tailwind")); err == nil && info.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(themePath, "web", "css", "*.less"))
	return err == nil && len(matches) > 0
}

// buildRoot describes the project-level toolchain prerequisites shared by
// every theme of this family.
func (b *Builder) buildRoot() deps.BuildRoot {
	return deps.BuildRoot{
		Dir: b.root,
		Manifest: deps.ScaffoldFile{
			Path:       filepath.Join(b.root, "package.json"),
			SamplePath: filepath.Join(b.root, "package.json.sample"),
			Template:   "package.json",
		},
		InstallDir: filepath.Join(b.root, "node_modules"),
		InstallCommand: shell.Command{
			Name: b.cfg.PackageManagerBinary(),
			Args: []string{"install"},
			Dir:  b.root,
		},
		Scaffolds: []deps.ScaffoldFile{
			{
				Path:       filepath.Join(b.root, "Gruntfile.js"),
				SamplePath: filepath.Join(b.root, "Gruntfile.js.sample"),
				Template:   "Gruntfile.js",
			},
			{
				Path:     filepath.Join(b.root, "grunt-config.json"),
				Template: "grunt-config.json",
				Optional: true,
			},
		},
	}
}

// AutoRepair bootstraps the shared Grunt toolchain once per invocation and
// reconciles the grunt config with its template.
func (b *Builder) AutoRepair(ctx context.Context, _ registry.ThemeDescriptor, sess *builder.Session) error {
	if err := sess.RunOnce(readyStep, func() error {
		sess.Reporter.Progressf(messages.BuilderStepDepsCheck)
		return b.deps.EnsureReady(ctx, b.buildRoot())
	}); err != nil {
		return err
	}

	// Drifted grunt config is repairable but never fatal.
	refresh := deps.ScaffoldFile{
		Path:     filepath.Join(b.root, "grunt-config.json"),
		Template: "grunt-config.json",
		Optional: true,
	}
	if err := b.deps.RefreshScaffold(refresh); err != nil {
		sess.Reporter.Warnf(messages.DepsSkippedOptionalFmt, refresh.Path, err)
	}
	return nil
}

// Build cleans stale output, recompiles the theme through grunt, deploys the
// compiled assets and invalidates caches.
func (b *Builder) Build(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot()); err != nil {
		return err
	}

	sess.Reporter.Progressf(messages.BuilderStepHousekeeping)
	builder.CleanOutputs(sess,
		housekeeping.NewStaticAssetCleaner(b.root, theme.Code),
		housekeeping.NewPreprocessedCleaner(b.root, theme.Code),
	)

	id := gruntThemeID(theme.Code)
	sess.Reporter.Progressf(messages.BuilderStepCompile)
	if _, err := b.runner.Run(ctx, b.gruntCommand(sess, "exec:"+id)); err != nil {
		return fmt.Errorf(messages.GruntExecFailedFmt, err)
	}
	if _, err := b.runner.Run(ctx, b.gruntCommand(sess, "less:"+id)); err != nil {
		return fmt.Errorf(messages.GruntLessFailedFmt, err)
	}

	if err := builder.Deploy(ctx, b.runner, b.cfg.MagentoBinary(b.root), b.root, theme.Code, sess); err != nil {
		return err
	}

	builder.CleanOutputs(sess,
		housekeeping.NewSymlinkCleaner(b.root, theme.Code),
	)
	if b.cfg.Clean.PageCacheEnabled() {
		builder.CleanOutputs(sess, housekeeping.NewPageCacheCleaner(b.root))
	}
	return nil
}

// Watch hands control to grunt watch until the context is cancelled.
func (b *Builder) Watch(ctx context.Context, theme registry.ThemeDescriptor, sess *builder.Session) error {
	if err := b.deps.EnsureReady(ctx, b.buildRoot()); err != nil {
		return err
	}
	id := gruntThemeID(theme.Code)
	if err := b.runner.Stream(ctx, b.gruntCommand(sess, "watch:"+id), sess.Stdout, sess.Stderr); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf(messages.GruntWatchFailedFmt, err)
	}
	return nil
}

func (b *Builder) gruntCommand(sess *builder.Session, task string) shell.Command {
	return shell.Command{
		Name: b.cfg.GruntBinary(b.root),
		Args: []string{task},
		Dir:  b.root,
		Env:  sess.Env,
	}
}

// gruntThemeID maps a theme code to the grunt task identifier convention:
// the lowercased theme name.
func gruntThemeID(code string) string {
	if idx := strings.LastIndex(code, "/"); idx >= 0 {
		code = code[idx+1:]
	}
	return strings.ToLower(code)
}
