// Package housekeeping removes stale compiled output, preprocessed
// intermediates, caches and dangling symlinks. Every failure here is meant
// to be downgraded to a warning by the caller; a clean never aborts a build.
package housekeeping

import (
	"os"
	"path/filepath"
)

// Cleaner removes one well-known output location.
type Cleaner struct {
	name  string
	clean func(dryRun bool) (int, error)
}

// Name identifies the cleaner in progress and warning messages.
func (c Cleaner) Name() string { return c.name }

// Clean removes the target and reports how many items were removed. A
// missing target is a no-op success. With dryRun the count is computed but
// nothing is removed.
func (c Cleaner) Clean(dryRun bool) (int, error) {
	return c.clean(dryRun)
}

// themeSuffix converts "Vendor/name" into the Vendor/name path fragment used
// under the static output trees.
func themeSuffix(code string) string {
	return filepath.FromSlash(code)
}

// NewStaticAssetCleaner removes a theme's compiled static assets under
// pub/static/frontend.
func NewStaticAssetCleaner(root string, code string) Cleaner {
	path := filepath.Join(root, "pub", "static", "frontend", themeSuffix(code))
	return Cleaner{name: "static assets " + code, clean: removeSubtree(path)}
}

// NewPreprocessedCleaner removes a theme's preprocessed intermediates under
// var/view_preprocessed.
func NewPreprocessedCleaner(root string, code string) Cleaner {
	path := filepath.Join(root, "var", "view_preprocessed", "pub", "static", "frontend", themeSuffix(code))
	return Cleaner{name: "preprocessed sources " + code, clean: removeSubtree(path)}
}

// NewPageCacheCleaner empties the global full-page cache.
func NewPageCacheCleaner(root string) Cleaner {
	path := filepath.Join(root, "var", "page_cache")
	return Cleaner{name: "page cache", clean: removeContents(path)}
}

// NewTempCleaner empties the global temp directory.
func NewTempCleaner(root string) Cleaner {
	path := filepath.Join(root, "var", "tmp")
	return Cleaner{name: "temp files", clean: removeContents(path)}
}

// NewGeneratedCleaner empties the generated code and metadata directories.
func NewGeneratedCleaner(root string) Cleaner {
	code := filepath.Join(root, "generated", "code")
	metadata := filepath.Join(root, "generated", "metadata")
	return Cleaner{name: "generated code", clean: func(dryRun bool) (int, error) {
		removed, err := removeContents(code)(dryRun)
		if err != nil {
			return removed, err
		}
		more, err := removeContents(metadata)(dryRun)
		return removed + more, err
	}}
}

// NewSymlinkCleaner removes dangling symlinks inside a theme's compiled-CSS
// directory.
func NewSymlinkCleaner(root string, code string) Cleaner {
	path := filepath.Join(root, "pub", "static", "frontend", themeSuffix(code), "css")
	return Cleaner{name: "dangling symlinks " + code, clean: removeDanglingSymlinks(path)}
}

// removeSubtree deletes the directory itself. The item count is the number
// of immediate entries plus the directory.
func removeSubtree(path string) func(bool) (int, error) {
	return func(dryRun bool) (int, error) {
		entries, err := os.ReadDir(path)
		if os.IsNotExist(err) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		count := len(entries) + 1
		if dryRun {
			return count, nil
		}
		if err := os.RemoveAll(path); err != nil {
			return 0, err
		}
		return count, nil
	}
}

// removeContents empties a directory but keeps the directory itself.
func removeContents(path string) func(bool) (int, error) {
	return func(dryRun bool) (int, error) {
		entries, err := os.ReadDir(path)
		if os.IsNotExist(err) {
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		removed := 0
		for _, entry := range entries {
			if dryRun {
				removed++
				continue
			}
			if err := os.RemoveAll(filepath.Join(path, entry.Name())); err != nil {
				return removed, err
			}
			removed++
		}
		return removed, nil
	}
}

// removeDanglingSymlinks walks path and removes symlinks whose targets no
// longer exist.
func removeDanglingSymlinks(path string) func(bool) (int, error) {
	return func(dryRun bool) (int, error) {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return 0, nil
		}
		removed := 0
		err := filepath.Walk(path, func(name string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.Mode()&os.ModeSymlink == 0 {
				return nil
			}
			if _, err := os.Stat(name); err == nil {
				return nil
			}
			if !dryRun {
				if err := os.Remove(name); err != nil {
					return err
				}
			}
			removed++
			return nil
		})
		return removed, err
	}
}
