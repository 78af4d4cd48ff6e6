package messages

// Dependency checker messages and prompt titles.
const (
	DepsManifestMissingFmt  = "required manifest %s is missing and no template is available to create it"
	DepsScaffoldMissingFmt  = "required file %s is missing and no template is available to create it"
	DepsCreateDeclinedFmt   = "cannot continue without %s"
	DepsInstallDeclinedFmt  = "cannot continue without installed dependencies in %s"
	DepsInstallFailedFmt    = "dependency install in %s failed: %w"
	DepsReadTemplateFmt     = "read template %s: %w"
	DepsWriteFileFmt        = "write %s: %w"
	DepsSkippedOptionalFmt  = "skipping optional scaffold %s: %v"
	DepsCreatedFmt          = "created %s from %s"
	DepsInstalledFmt        = "installed dependencies in %s"
	DepsUpToDateFmt         = "%s matches its template"

	DepsPromptCreateFmt    = "Create missing %s from %s?"
	DepsPromptInstallFmt   = "Install dependencies in %s now?"
	DepsPromptOverwriteFmt = "Overwrite %s with the template version?"

	// DepsPromptRequired is returned when a prompt callback is not configured.
	DepsPromptRequired = "a confirmation prompt is required but none is configured"
)
