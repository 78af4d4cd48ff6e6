// Package deps ensures build prerequisites exist before a toolchain run,
// offering to bootstrap missing manifests, scaffold files and installed
// dependencies.
package deps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/report"
	"github.com/coralpress/themebuild/internal/shell"
	"github.com/coralpress/themebuild/internal/templates"
)

// ErrPrerequisite reports a prerequisite that is unsatisfied and
// unrepairable: no template is available or consent was declined. It aborts
// the current theme only.
var ErrPrerequisite = errors.New("build prerequisite missing")

// ScaffoldFile describes one file the toolchain requires. When missing it is
// materialized from SamplePath if that file exists, otherwise from the
// embedded Template.
type ScaffoldFile struct {
	// Path is the absolute destination.
	Path string
	// SamplePath is an optional on-disk template (e.g. package.json.sample).
	SamplePath string
	// Template is an optional embedded template name.
	Template string
	// Optional scaffolds are skipped with a warning when repair fails.
	Optional bool
	// Perm defaults to 0644.
	Perm os.FileMode
}

func (f ScaffoldFile) perm() os.FileMode {
	if f.Perm == 0 {
		return 0o644
	}
	return f.Perm
}

// BuildRoot describes the prerequisites of one toolchain working directory.
type BuildRoot struct {
	Dir string
	// Manifest is the primary manifest file; its absence is fatal when it
	// cannot be repaired.
	Manifest ScaffoldFile
	// InstallDir is the installed-dependencies directory (node_modules).
	InstallDir string
	// InstallCommand materializes InstallDir via the package manager.
	InstallCommand shell.Command
	// Scaffolds are additional required files checked with the same
	// template-copy protocol as the manifest.
	Scaffolds []ScaffoldFile
}

// Checker runs the fixed-order readiness protocol over a BuildRoot. The
// final filesystem state is idempotent across repeated runs; user prompts
// may recur.
type Checker struct {
	Sys      System
	Runner   shell.Runner
	Prompter Prompter
	Reporter report.Reporter
}

// NewChecker creates a checker with the real filesystem.
func NewChecker(runner shell.Runner, prompter Prompter, reporter report.Reporter) *Checker {
	if reporter == nil {
		reporter = report.Discard{}
	}
	return &Checker{Sys: RealSystem{}, Runner: runner, Prompter: prompter, Reporter: reporter}
}

// EnsureReady checks, in fixed order, the manifest, the installed-dependency
// directory, and any additional scaffold files, repairing each with consent.
func (c *Checker) EnsureReady(ctx context.Context, root BuildRoot) error {
	if err := c.ensureScaffold(root.Manifest, true); err != nil {
		return err
	}
	if err := c.ensureInstalled(ctx, root); err != nil {
		return err
	}
	for _, scaffold := range root.Scaffolds {
		err := c.ensureScaffold(scaffold, false)
		if err == nil {
			continue
		}
		if scaffold.Optional {
			c.Reporter.Warnf(messages.DepsSkippedOptionalFmt, scaffold.Path, err)
			continue
		}
		return err
	}
	return nil
}

// ensureScaffold applies the exists? -> offer to materialize -> fail
// sub-protocol to one file.
func (c *Checker) ensureScaffold(file ScaffoldFile, manifest bool) error {
	if _, err := c.Sys.Stat(file.Path); err == nil {
		return nil
	}

	source, data, err := c.scaffoldSource(file)
	if err != nil {
		if manifest {
			return fmt.Errorf("%w: "+messages.DepsManifestMissingFmt, ErrPrerequisite, file.Path)
		}
		return fmt.Errorf("%w: "+messages.DepsScaffoldMissingFmt, ErrPrerequisite, file.Path)
	}

	ok, err := c.Prompter.ConfirmCreate(file.Path, source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: "+messages.DepsCreateDeclinedFmt, ErrPrerequisite, file.Path)
	}

	if err := c.writeScaffold(file, data); err != nil {
		return err
	}
	c.Reporter.Progressf(messages.DepsCreatedFmt, file.Path, source)
	return nil
}

// scaffoldSource resolves the template content for a missing scaffold,
// preferring the on-disk sample over the embedded template.
func (c *Checker) scaffoldSource(file ScaffoldFile) (string, []byte, error) {
	if file.SamplePath != "" {
		if data, err := c.Sys.ReadFile(file.SamplePath); err == nil {
			return filepath.Base(file.SamplePath), data, nil
		}
	}
	if file.Template != "" {
		data, err := templates.Read(file.Template)
		if err != nil {
			return "", nil, fmt.Errorf(messages.DepsReadTemplateFmt, file.Template, err)
		}
		return "template " + file.Template, data, nil
	}
	return "", nil, os.ErrNotExist
}

func (c *Checker) writeScaffold(file ScaffoldFile, data []byte) error {
	if err := c.Sys.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
		return fmt.Errorf(messages.DepsWriteFileFmt, file.Path, err)
	}
	if err := c.Sys.WriteFileAtomic(file.Path, data, file.perm()); err != nil {
		return fmt.Errorf(messages.DepsWriteFileFmt, file.Path, err)
	}
	return nil
}

// ensureInstalled checks the installed-dependencies directory and offers to
// run the install command. Install failures are always fatal to the call and
// carry the captured toolchain output.
func (c *Checker) ensureInstalled(ctx context.Context, root BuildRoot) error {
	if root.InstallDir == "" {
		return nil
	}
	if _, err := c.Sys.Stat(root.InstallDir); err == nil {
		return nil
	}

	ok, err := c.Prompter.ConfirmInstall(root.Dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: "+messages.DepsInstallDeclinedFmt, ErrPrerequisite, root.Dir)
	}

	if _, err := c.Runner.Run(ctx, root.InstallCommand); err != nil {
		return fmt.Errorf(messages.DepsInstallFailedFmt, root.Dir, err)
	}
	c.Reporter.Progressf(messages.DepsInstalledFmt, root.Dir)
	return nil
}
