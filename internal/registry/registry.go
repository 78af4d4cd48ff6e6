// Package registry provides read-only lookup of installed frontend themes.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ThemeDescriptor identifies one installed theme. Code has the form
// "Vendor/name"; AbsolutePath is the theme directory on disk.
type ThemeDescriptor struct {
	Code         string
	AbsolutePath string
}

// Registry scans the application's frontend theme tree.
type Registry struct {
	root string
}

// New creates a registry rooted at the application root.
func New(root string) *Registry {
	return &Registry{root: root}
}

func (r *Registry) frontendDir() string {
	return filepath.Join(r.root, "app", "design", "frontend")
}

// ListAll returns every registered theme, sorted by code. A theme directory
// counts as registered when it contains a theme.xml.
func (r *Registry) ListAll() ([]ThemeDescriptor, error) {
	vendors, err := os.ReadDir(r.frontendDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var themes []ThemeDescriptor
	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		vendorDir := filepath.Join(r.frontendDir(), vendor.Name())
		entries, err := os.ReadDir(vendorDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(vendorDir, entry.Name())
			if !isTheme(path) {
				continue
			}
			themes = append(themes, ThemeDescriptor{
				Code:         vendor.Name() + "/" + entry.Name(),
				AbsolutePath: path,
			})
		}
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Code < themes[j].Code })
	return themes, nil
}

// ResolvePath resolves a theme code to its directory. The second return is
// false when the code is malformed or the theme is not installed.
func (r *Registry) ResolvePath(code string) (string, bool) {
	vendor, name, ok := splitCode(code)
	if !ok {
		return "", false
	}
	path := filepath.Join(r.frontendDir(), vendor, name)
	if !isTheme(path) {
		return "", false
	}
	return path, true
}

func splitCode(code string) (vendor string, name string, ok bool) {
	parts := strings.Split(code, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func isTheme(path string) bool {
	info, err := os.Stat(filepath.Join(path, "theme.xml"))
	return err == nil && !info.IsDir()
}
