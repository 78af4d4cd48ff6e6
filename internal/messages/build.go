package messages

// Builder and orchestration messages.
const (
	// NotInstalledFmt reports a theme code the registry cannot resolve.
	NotInstalledFmt = "theme %s is not installed"
	// NoBuilderFmt reports that no registered strategy claimed the theme path.
	NoBuilderFmt = "no builder strategy claims theme %s at %s"

	RepairFailedFmt   = "prerequisite repair failed for %s: %v"
	BuildFailedForFmt = "build failed for %s: %v"
	WatchFailedForFmt = "watch failed for %s: %v"
	BuiltFmt          = "built %s with %s in %s"

	BuilderStepDepsCheck      = "checking build prerequisites"
	BuilderStepCompile        = "compiling theme sources"
	BuilderStepDeploy         = "deploying static assets"
	BuilderStepHousekeeping   = "removing stale compiled output"
	BuilderStepWatchRebuild   = "source change detected; rebuilding"
	BuilderStepWatchRecovered = "rebuild failed; continuing to watch"

	GruntExecFailedFmt   = "grunt exec failed: %w"
	GruntLessFailedFmt   = "grunt less compilation failed: %w"
	GruntWatchFailedFmt  = "grunt watch exited: %w"
	NpmBuildFailedFmt    = "npm build script failed: %w"
	NpmWatchFailedFmt    = "npm watch script failed: %w"
	DeployFailedFmt      = "static asset deploy failed: %w"
	FallbackNoBuildScriptFmt = "package.json at %s declares no build script and no build command is configured"
	FallbackNoWatchFmt       = "package.json for %s declares no watch script; falling back to source watching"
	SourceWatchCreateFmt     = "create source watcher: %w"
	SourceWatchAddFmt        = "watch %s: %w"
	SourceWatchErrorFmt      = "source watcher error: %v"
)
