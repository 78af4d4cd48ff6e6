package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "themebuild"
	// RootShort is the short description for the root command.
	RootShort = "Theme build orchestration CLI"
	RootLong  = "themebuild detects which build toolchain applies to each frontend theme,\nrepairs missing build prerequisites, and drives compilation or watch mode\nthrough the external toolchain."

	RootMissingProject = "no project root found (missing app/design and bin/magento); run themebuild inside a project checkout or pass --root"

	RootFlagRoot    = "Project root directory (default: discovered from the working directory)"
	RootFlagConfig  = "Path to the themebuild config file (default: <root>/.themebuild.toml)"
	RootFlagYes     = "Assume yes for all repair and install prompts"
	RootFlagNoColor = "Disable colored output"

	VersionTemplate = "{{.Version}}\n"
	VersionFullFmt  = "%s (commit %s, built %s)"

	BuildUse   = "build [theme-code...]"
	BuildShort = "Build one or more themes through their detected toolchain"
	BuildLong  = "Build resolves a builder strategy for each requested theme, repairs missing\nprerequisites, runs the toolchain compile pipeline, deploys static assets and\ninvalidates caches. Themes are processed in the order given."

	BuildFlagAll     = "Build every theme registered under app/design/frontend"
	BuildFlagDryRun  = "Report housekeeping work without removing anything"
	BuildNoThemes    = "no themes requested; pass theme codes (Vendor/name) or --all"
	BuildNothingFmt  = "no themes registered under %s\n"
	BuildFailedFmt   = "%d of %d themes failed"

	WatchUse   = "watch <theme-code>"
	WatchShort = "Run the theme's toolchain in watch mode until interrupted"
	WatchLong  = "Watch resolves the theme's builder strategy, repairs prerequisites, and hands\ncontrol to the toolchain's long-running watch process. Interrupt (Ctrl-C) to\nstop; the external watcher is terminated with the command context."

	CleanUse   = "clean [theme-code...]"
	CleanShort = "Remove stale compiled output and caches"
	CleanLong  = "Clean removes compiled static assets and preprocessed intermediates for the\nrequested themes, plus the global page cache, temp and generated directories.\nWith no theme codes only the global targets are cleaned."

	CleanFlagDryRun = "Report what would be removed without removing anything"

	// PromptNonInteractive is returned when a consent prompt is required
	// but stdin/stdout is not a terminal.
	PromptNonInteractive = "confirmation required but no interactive terminal is available; re-run with --yes to confirm automatically"
)

// Summary and progress rendering.
const (
	SummaryHeader    = "Build summary:"
	SummaryLineFmt   = "%s  %-40s %-12s %10s  %s\n"
	SummaryOKLabel   = "[ OK ]"
	SummaryFailLabel = "[FAIL]"
	SummaryNoBuilder = "-"

	ProgressThemeFmt = "==> %s"
	WarnFmt          = "warning: %s"

	WatchStartFmt   = "watching %s (%s); interrupt to stop"
	WatchStoppedFmt = "watch stopped for %s"

	CleanRemovedFmt = "%s: removed %d item(s)"
	CleanDryRunFmt  = "%s: would remove %d item(s)"
	CleanFailedFmt  = "cleaning %s failed: %v"
)
