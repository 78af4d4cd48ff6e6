package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTheme(t *testing.T, root string, code string) string {
	t.Helper()
	dir := filepath.Join(root, "app", "design", "frontend", filepath.FromSlash(code))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.xml"), []byte("<theme/>"), 0o644))
	return dir
}

func TestListAllSortedByCode(t *testing.T) {
	root := t.TempDir()
	seedTheme(t, root, "Zeta/dark")
	seedTheme(t, root, "Acme/base")
	// Directory without theme.xml is not a theme.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "design", "frontend", "Acme", "scratch"), 0o755))

	themes, err := New(root).ListAll()
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, "Acme/base", themes[0].Code)
	assert.Equal(t, "Zeta/dark", themes[1].Code)
}

func TestListAllEmptyTree(t *testing.T) {
	themes, err := New(t.TempDir()).ListAll()
	require.NoError(t, err)
	assert.Empty(t, themes)
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()
	dir := seedTheme(t, root, "Acme/base")

	path, ok := New(root).ResolvePath("Acme/base")
	require.True(t, ok)
	assert.Equal(t, dir, path)
}

func TestResolvePathNotInstalled(t *testing.T) {
	reg := New(t.TempDir())

	_, ok := reg.ResolvePath("Vendor/NotATheme")
	assert.False(t, ok)
}

func TestResolvePathMalformedCode(t *testing.T) {
	reg := New(t.TempDir())
	for _, code := range []string{"", "Acme", "Acme/", "/base", "Acme/base/extra"} {
		_, ok := reg.ResolvePath(code)
		assert.False(t, ok, "code %q", code)
	}
}
