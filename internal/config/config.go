// Package config loads and validates the .themebuild.toml project
// configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/coralpress/themebuild/internal/messages"
)

// Supported package managers.
const (
	ManagerNpm  = "npm"
	ManagerPnpm = "pnpm"
	ManagerYarn = "yarn"
)

// Config is the project-level themebuild configuration.
type Config struct {
	// PackageManager selects the node package manager (npm, pnpm, yarn).
	PackageManager string `toml:"package-manager"`
	// AutoConfirm answers yes to every repair and install prompt.
	AutoConfirm bool        `toml:"auto-confirm"`
	Binaries    Binaries    `toml:"binaries"`
	Clean       CleanConfig `toml:"clean"`
	// Themes carries per-theme command overrides for the fallback builder.
	Themes []ThemeOverride `toml:"themes"`
}

// Binaries overrides the executables invoked by the toolchain. Paths may
// start with ~ and are expanded at load time.
type Binaries struct {
	PackageManager string `toml:"package-manager"`
	Grunt          string `toml:"grunt"`
	Magento        string `toml:"magento"`
}

// CleanConfig toggles the global housekeeping targets. Nil means enabled.
type CleanConfig struct {
	PageCache *bool `toml:"page-cache"`
	Generated *bool `toml:"generated"`
	Temp      *bool `toml:"temp"`
}

// ThemeOverride replaces the fallback builder's npm script commands for one
// theme code.
type ThemeOverride struct {
	Code         string   `toml:"code"`
	BuildCommand []string `toml:"build-command"`
	WatchCommand []string `toml:"watch-command"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{PackageManager: ManagerNpm}
}

// PackageManagerBinary returns the executable used for package management.
func (c *Config) PackageManagerBinary() string {
	if c.Binaries.PackageManager != "" {
		return c.Binaries.PackageManager
	}
	if c.PackageManager != "" {
		return c.PackageManager
	}
	return ManagerNpm
}

// GruntBinary returns the grunt executable, preferring the project-local
// install under node_modules when no override is configured.
func (c *Config) GruntBinary(root string) string {
	if c.Binaries.Grunt != "" {
		return c.Binaries.Grunt
	}
	return filepath.Join(root, "node_modules", ".bin", "grunt")
}

// MagentoBinary returns the host application CLI used for static deploys.
func (c *Config) MagentoBinary(root string) string {
	if c.Binaries.Magento != "" {
		return c.Binaries.Magento
	}
	return filepath.Join(root, "bin", "magento")
}

// Override returns the theme override for code, if any.
func (c *Config) Override(code string) (ThemeOverride, bool) {
	for _, override := range c.Themes {
		if override.Code == code {
			return override, true
		}
	}
	return ThemeOverride{}, false
}

// CleanEnabled reports whether a global clean target is enabled.
func cleanEnabled(flag *bool) bool {
	return flag == nil || *flag
}

// PageCacheEnabled reports whether the page cache is cleaned after builds.
func (c *CleanConfig) PageCacheEnabled() bool { return cleanEnabled(c.PageCache) }

// GeneratedEnabled reports whether generated code/metadata is cleaned.
func (c *CleanConfig) GeneratedEnabled() bool { return cleanEnabled(c.Generated) }

// TempEnabled reports whether the temp directory is cleaned.
func (c *CleanConfig) TempEnabled() bool { return cleanEnabled(c.Temp) }

// Validate checks semantic constraints after a successful parse. source
// names the config origin for error messages.
func (c *Config) Validate(source string) error {
	switch c.PackageManager {
	case "", ManagerNpm, ManagerPnpm, ManagerYarn:
	default:
		return fmt.Errorf(messages.ConfigInvalidManagerFmt, source, c.PackageManager)
	}
	for i, override := range c.Themes {
		if override.Code == "" {
			return fmt.Errorf(messages.ConfigOverrideCodeFmt, source, i)
		}
		if len(override.BuildCommand) == 0 {
			return fmt.Errorf(messages.ConfigOverrideCmdFmt, source, override.Code)
		}
	}
	return nil
}
