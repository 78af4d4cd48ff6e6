package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProject lays out a minimal project root with the discovery markers.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "design", "frontend"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "magento"), []byte("#!/bin/sh\n"), 0o755))
	return root
}

// installTheme registers a theme directory under the project root.
func installTheme(t *testing.T, root, code string) string {
	t.Helper()
	dir := filepath.Join(root, "app", "design", "frontend", filepath.FromSlash(code))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.xml"), []byte("<theme/>"), 0o644))
	return dir
}

func TestRootCommandStructure(t *testing.T) {
	cmd := newRootCmd()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["build"])
	assert.True(t, names["watch"])
	assert.True(t, names["clean"])

	for _, flag := range []string{"root", "config", "yes", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestResolveRootPrefersFlag(t *testing.T) {
	root := newProject(t)
	got, err := resolveRoot(&rootOptions{rootDir: root})
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestResolveRootDiscoversFromWorkingDirectory(t *testing.T) {
	root := newProject(t)
	nested := filepath.Join(root, "app", "design", "frontend")

	original := getwd
	t.Cleanup(func() { getwd = original })
	getwd = func() (string, error) { return nested, nil }

	got, err := resolveRoot(&rootOptions{})
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestResolveRootFailsOutsideProject(t *testing.T) {
	outside := t.TempDir()

	original := getwd
	t.Cleanup(func() { getwd = original })
	getwd = func() (string, error) { return outside, nil }

	_, err := resolveRoot(&rootOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project root")
}
