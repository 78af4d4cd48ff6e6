package deps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coralpress/themebuild/internal/shell"
	"github.com/coralpress/themebuild/internal/shell/shelltest"
)

// fakeSystem is an in-memory System that records every write.
type fakeSystem struct {
	files  map[string][]byte
	dirs   map[string]bool
	writes []string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{files: map[string][]byte{}, dirs: map[string]bool{}}
}

type fakeInfo struct {
	name string
	dir  bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() any           { return nil }

func (s *fakeSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := s.files[name]; ok {
		return fakeInfo{name: filepath.Base(name)}, nil
	}
	if s.dirs[name] {
		return fakeInfo{name: filepath.Base(name), dir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (s *fakeSystem) ReadFile(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (s *fakeSystem) MkdirAll(path string, _ os.FileMode) error {
	s.dirs[path] = true
	return nil
}

func (s *fakeSystem) WriteFileAtomic(filename string, data []byte, _ os.FileMode) error {
	s.files[filename] = data
	s.writes = append(s.writes, filename)
	return nil
}

// recordingReporter captures progress and warning lines.
type recordingReporter struct {
	progress []string
	warnings []string
}

func (r *recordingReporter) Progressf(format string, args ...any) {
	r.progress = append(r.progress, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func yesPrompter() PromptFuncs {
	return PromptFuncs{
		ConfirmCreateFunc:    func(string, string) (bool, error) { return true, nil },
		ConfirmInstallFunc:   func(string) (bool, error) { return true, nil },
		ConfirmOverwriteFunc: func(string, string) (bool, error) { return true, nil },
	}
}

func testRoot(dir string) BuildRoot {
	return BuildRoot{
		Dir: dir,
		Manifest: ScaffoldFile{
			Path:       filepath.Join(dir, "package.json"),
			SamplePath: filepath.Join(dir, "package.json.sample"),
			Template:   "package.json",
		},
		InstallDir:     filepath.Join(dir, "node_modules"),
		InstallCommand: shell.Command{Name: "npm", Args: []string{"install"}, Dir: dir},
	}
}

func TestEnsureReadyBootstrapsManifestFromSample(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json.sample")] = []byte(`{"sample":true}`)
	sys.dirs[filepath.Join(dir, "node_modules")] = true

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	require.NoError(t, checker.EnsureReady(context.Background(), testRoot(dir)))

	assert.Equal(t, []byte(`{"sample":true}`), sys.files[filepath.Join(dir, "package.json")])
}

func TestEnsureReadyFallsBackToEmbeddedTemplate(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.dirs[filepath.Join(dir, "node_modules")] = true

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	require.NoError(t, checker.EnsureReady(context.Background(), testRoot(dir)))

	assert.Contains(t, string(sys.files[filepath.Join(dir, "package.json")]), "grunt")
}

func TestEnsureReadyIdempotentEndState(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json.sample")] = []byte(`{}`)
	sys.dirs[filepath.Join(dir, "node_modules")] = true

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	require.NoError(t, checker.EnsureReady(context.Background(), testRoot(dir)))
	firstWrites := len(sys.writes)

	require.NoError(t, checker.EnsureReady(context.Background(), testRoot(dir)))
	assert.Equal(t, firstWrites, len(sys.writes), "second run must not mutate the filesystem")
}

func TestEnsureReadyManifestUnrepairable(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	root := testRoot(dir)
	root.Manifest.SamplePath = ""
	root.Manifest.Template = ""

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	err := checker.EnsureReady(context.Background(), root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrerequisite))
	assert.Contains(t, err.Error(), root.Manifest.Path)
}

func TestEnsureReadyCreateDeclined(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	prompter := yesPrompter()
	prompter.ConfirmCreateFunc = func(string, string) (bool, error) { return false, nil }

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: prompter, Reporter: &recordingReporter{}}
	err := checker.EnsureReady(context.Background(), testRoot(dir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrerequisite))
	assert.Empty(t, sys.writes)
}

func TestEnsureReadyRunsInstall(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json")] = []byte(`{}`)
	runner := shelltest.NewRunner()

	checker := &Checker{Sys: sys, Runner: runner, Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	require.NoError(t, checker.EnsureReady(context.Background(), testRoot(dir)))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "npm install", runner.Calls[0].String())
	assert.Equal(t, dir, runner.Calls[0].Dir)
}

func TestEnsureReadyInstallFailureCarriesOutput(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json")] = []byte(`{}`)
	runner := shelltest.NewRunner()
	runner.Script("npm install", shelltest.Response{Err: &shell.ExitError{
		Command:  "npm install",
		ExitCode: 1,
		Stderr:   "ERESOLVE unable to resolve dependency tree",
	}})

	checker := &Checker{Sys: sys, Runner: runner, Prompter: yesPrompter(), Reporter: &recordingReporter{}}
	err := checker.EnsureReady(context.Background(), testRoot(dir))
	require.Error(t, err)

	var exitErr *shell.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "ERESOLVE")
}

func TestEnsureReadyInstallDeclined(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json")] = []byte(`{}`)
	prompter := yesPrompter()
	prompter.ConfirmInstallFunc = func(string) (bool, error) { return false, nil }

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: prompter, Reporter: &recordingReporter{}}
	err := checker.EnsureReady(context.Background(), testRoot(dir))
	assert.True(t, errors.Is(err, ErrPrerequisite))
}

func TestEnsureReadyOptionalScaffoldSkippedWithWarning(t *testing.T) {
	sys := newFakeSystem()
	dir := "/project"
	sys.files[filepath.Join(dir, "package.json")] = []byte(`{}`)
	sys.dirs[filepath.Join(dir, "node_modules")] = true
	reporter := &recordingReporter{}

	root := testRoot(dir)
	root.Scaffolds = []ScaffoldFile{{
		Path:     filepath.Join(dir, "grunt-config.json"),
		Optional: true,
		// No sample and no template: repair must fail, then be skipped.
	}}

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: yesPrompter(), Reporter: reporter}
	require.NoError(t, checker.EnsureReady(context.Background(), root))
	assert.Len(t, reporter.warnings, 1)
}

func TestRefreshScaffoldOverwriteAccepted(t *testing.T) {
	sys := newFakeSystem()
	path := "/project/grunt-config.json"
	sys.files[path] = []byte("{\n  \"themes\": \"old\"\n}\n")

	var sawDiff string
	prompter := yesPrompter()
	prompter.ConfirmOverwriteFunc = func(_ string, diff string) (bool, error) {
		sawDiff = diff
		return true, nil
	}

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: prompter, Reporter: &recordingReporter{}}
	require.NoError(t, checker.RefreshScaffold(ScaffoldFile{Path: path, Template: "grunt-config.json"}))

	assert.Contains(t, sawDiff, "-")
	assert.Contains(t, string(sys.files[path]), "local-themes")
}

func TestRefreshScaffoldOverwriteDeclinedKeepsLocal(t *testing.T) {
	sys := newFakeSystem()
	path := "/project/grunt-config.json"
	local := []byte("{\n  \"themes\": \"mine\"\n}\n")
	sys.files[path] = local

	prompter := yesPrompter()
	prompter.ConfirmOverwriteFunc = func(string, string) (bool, error) { return false, nil }

	checker := &Checker{Sys: sys, Runner: shelltest.NewRunner(), Prompter: prompter, Reporter: &recordingReporter{}}
	require.NoError(t, checker.RefreshScaffold(ScaffoldFile{Path: path, Template: "grunt-config.json"}))
	assert.Equal(t, local, sys.files[path])
}
