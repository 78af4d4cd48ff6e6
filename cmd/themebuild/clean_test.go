package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCleanTargets(t *testing.T, root string) (staticDir, cacheFile string) {
	t.Helper()
	staticDir = filepath.Join(root, "pub", "static", "frontend", "Vendor", "Luma")
	require.NoError(t, os.MkdirAll(staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "styles.css"), []byte("body{}"), 0o644))

	cacheDir := filepath.Join(root, "var", "page_cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))
	cacheFile = filepath.Join(cacheDir, "entry")
	require.NoError(t, os.WriteFile(cacheFile, []byte("cached"), 0o644))
	return staticDir, cacheFile
}

func TestCleanRemovesThemeAndGlobalTargets(t *testing.T) {
	root := newProject(t)
	installTheme(t, root, "Vendor/Luma")
	staticDir, cacheFile := seedCleanTargets(t, root)

	var out, errOut bytes.Buffer
	err := execute([]string{"themebuild", "clean", "Vendor/Luma", "--root", root, "--no-color"}, &out, &errOut)
	require.NoError(t, err)

	assert.NoDirExists(t, staticDir)
	assert.NoFileExists(t, cacheFile)
	// The cache directory itself survives; only its contents go.
	assert.DirExists(t, filepath.Join(root, "var", "page_cache"))
	assert.Contains(t, out.String(), "removed")
}

func TestCleanDryRunKeepsEverything(t *testing.T) {
	root := newProject(t)
	installTheme(t, root, "Vendor/Luma")
	staticDir, cacheFile := seedCleanTargets(t, root)

	var out, errOut bytes.Buffer
	err := execute([]string{"themebuild", "clean", "Vendor/Luma", "--dry-run", "--root", root, "--no-color"}, &out, &errOut)
	require.NoError(t, err)

	assert.DirExists(t, staticDir)
	assert.FileExists(t, cacheFile)
	assert.Contains(t, out.String(), "would remove")
}

func TestCleanRejectsUnknownTheme(t *testing.T) {
	root := newProject(t)

	var out, errOut bytes.Buffer
	err := execute([]string{"themebuild", "clean", "Vendor/Missing", "--root", root}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}

func TestCleanDisabledTargetsAreSkipped(t *testing.T) {
	root := newProject(t)
	_, cacheFile := seedCleanTargets(t, root)
	installTheme(t, root, "Vendor/Luma")
	configPath := filepath.Join(root, ".themebuild.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[clean]\npage-cache = false\n"), 0o644))

	var out, errOut bytes.Buffer
	err := execute([]string{"themebuild", "clean", "--root", root, "--no-color"}, &out, &errOut)
	require.NoError(t, err)
	assert.FileExists(t, cacheFile)
}
