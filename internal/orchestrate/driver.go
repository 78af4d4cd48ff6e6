// Package orchestrate drives the per-theme build loop: resolve each theme,
// pick its strategy, repair prerequisites, and run the toolchain.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/registry"
	"github.com/coralpress/themebuild/internal/report"
)

// Driver processes requested themes in order through the strategy registry.
type Driver struct {
	Themes   *registry.Registry
	Builders *builder.Registry
	Reporter report.Reporter
}

// New creates a driver. A nil reporter discards progress output.
func New(themes *registry.Registry, builders *builder.Registry, reporter report.Reporter) *Driver {
	if reporter == nil {
		reporter = report.Discard{}
	}
	return &Driver{Themes: themes, Builders: builders, Reporter: reporter}
}

// BuildThemes builds each requested theme code in the order given. A failure
// is recorded in that theme's result and never stops the remaining themes;
// only ctx cancellation aborts the loop early. Results preserve input order.
func (d *Driver) BuildThemes(ctx context.Context, codes []string, sess *builder.Session) []builder.Result {
	results := make([]builder.Result, 0, len(codes))
	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}
		results = append(results, d.buildOne(ctx, code, sess))
	}
	return results
}

func (d *Driver) buildOne(ctx context.Context, code string, sess *builder.Session) builder.Result {
	start := time.Now()
	result := builder.Result{ThemeCode: code}

	theme, strat, ok := d.resolve(code, &result)
	if !ok {
		result.Duration = time.Since(start)
		return result
	}

	d.Reporter.Progressf(messages.ProgressThemeFmt, code)
	if err := strat.AutoRepair(ctx, theme, sess); err != nil {
		result.Message = fmt.Sprintf(messages.RepairFailedFmt, code, err)
	} else if err := strat.Build(ctx, theme, sess); err != nil {
		result.Message = fmt.Sprintf(messages.BuildFailedForFmt, code, err)
	} else {
		result.Success = true
	}

	result.Duration = time.Since(start)
	if result.Success {
		result.Message = fmt.Sprintf(messages.BuiltFmt, code, strat.Name(), result.Duration.Round(time.Millisecond))
	}
	return result
}

// WatchTheme repairs one theme and blocks in its watch process until ctx is
// cancelled. Cancellation is the normal way to stop and counts as success.
func (d *Driver) WatchTheme(ctx context.Context, code string, sess *builder.Session) builder.Result {
	start := time.Now()
	result := builder.Result{ThemeCode: code}

	theme, strat, ok := d.resolve(code, &result)
	if !ok {
		result.Duration = time.Since(start)
		return result
	}

	if err := strat.AutoRepair(ctx, theme, sess); err != nil {
		result.Message = fmt.Sprintf(messages.RepairFailedFmt, code, err)
		result.Duration = time.Since(start)
		return result
	}

	d.Reporter.Progressf(messages.WatchStartFmt, code, strat.Name())
	err := strat.Watch(ctx, theme, sess)
	result.Duration = time.Since(start)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		result.Success = true
		result.Message = fmt.Sprintf(messages.WatchStoppedFmt, code)
	default:
		result.Message = fmt.Sprintf(messages.WatchFailedForFmt, code, err)
	}
	return result
}

// resolve maps a theme code to its descriptor and strategy, recording the
// not-installed and no-builder outcomes on the result. Detect is never called
// for a code the theme registry cannot resolve.
func (d *Driver) resolve(code string, result *builder.Result) (registry.ThemeDescriptor, builder.Builder, bool) {
	path, ok := d.Themes.ResolvePath(code)
	if !ok {
		result.Message = fmt.Sprintf(messages.NotInstalledFmt, code)
		return registry.ThemeDescriptor{}, nil, false
	}
	theme := registry.ThemeDescriptor{Code: code, AbsolutePath: path}

	strat, ok := d.Builders.Resolve(theme.AbsolutePath)
	if !ok {
		result.Message = fmt.Sprintf(messages.NoBuilderFmt, code, path)
		return registry.ThemeDescriptor{}, nil, false
	}
	result.BuilderName = strat.Name()
	return theme, strat, true
}
