package messages

// Config loading and validation messages.
const (
	ConfigMissingFileFmt      = "failed to read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v."
	ConfigValidationGuidance  = "Fix .themebuild.toml and re-run."
	ConfigInvalidManagerFmt   = "%s: package-manager %q is not supported (use npm, pnpm or yarn)"
	ConfigOverrideCodeFmt     = "%s: theme override %d is missing a theme code"
	ConfigOverrideCmdFmt      = "%s: theme override for %s declares no build command"
	ConfigExpandPathFmt       = "expand path %q: %w"
	ConfigInvalidEnvFileFmt   = "invalid env file %s: %w"
)
