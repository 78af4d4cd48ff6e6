// Package approot locates the host application root for the current
// working directory.
package approot

import (
	"os"
	"path/filepath"
)

// markers are the directory entries that identify an application root.
// Both must exist: app/design holds the theme tree and bin/magento is the
// host application's CLI entry point.
var markers = []string{
	filepath.Join("app", "design"),
	filepath.Join("bin", "magento"),
}

// Find searches upwards from start for a directory containing the project
// markers. It returns the root directory and whether one was found.
func Find(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		if isRoot(dir) {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func isRoot(dir string) bool {
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err != nil {
			return false
		}
	}
	return true
}
