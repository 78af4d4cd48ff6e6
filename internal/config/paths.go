package config

import "path/filepath"

// Paths collects the well-known file locations under a project root.
type Paths struct {
	ConfigPath string
	EnvPath    string
}

// DefaultPaths returns the standard locations for a project root.
func DefaultPaths(root string) Paths {
	return Paths{
		ConfigPath: filepath.Join(root, ".themebuild.toml"),
		EnvPath:    filepath.Join(root, ".env"),
	}
}
