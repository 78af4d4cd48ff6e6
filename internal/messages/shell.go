package messages

// External process messages.
const (
	// ShellExitErrorFmt renders a non-zero exit with its captured output so the
	// operator never needs a verbose re-run to diagnose the failure.
	ShellExitErrorFmt = "command %q exited with code %d\nstdout:\n%s\nstderr:\n%s"
	// ShellStartFailedFmt reports a command that could not start at all, as
	// opposed to one that ran and exited non-zero.
	ShellStartFailedFmt = "start command %q: %w"
)
