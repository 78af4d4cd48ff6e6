// Package shell is the single sanctioned boundary for executing external
// toolchain commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/coralpress/themebuild/internal/messages"
)

// Command describes one external invocation. Dir is set on the invocation
// itself rather than by mutating the process working directory, so the
// caller's execution context is never left dirty on any exit path.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory for the command. Empty means the
	// current process directory.
	Dir string
	// Env is the full environment for the command. Nil inherits the
	// process environment.
	Env []string
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result carries the captured output of a completed invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError reports a non-zero exit from an external command, carrying the
// captured output verbatim so failures are diagnosable without a re-run.
type ExitError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf(messages.ShellExitErrorFmt, e.Command, e.ExitCode, e.Stdout, e.Stderr)
}

// Runner executes external commands.
// Inject this instead of calling exec.Command directly.
type Runner interface {
	// Run executes a command to completion, capturing stdout and stderr.
	// A non-zero exit returns a *ExitError alongside the captured Result.
	Run(ctx context.Context, cmd Command) (Result, error)

	// Stream executes a long-running command with its output wired to the
	// given writers. It blocks until the command exits or ctx is
	// cancelled; cancellation terminates the external process.
	Stream(ctx context.Context, cmd Command, stdout io.Writer, stderr io.Writer) error
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// NewExecRunner creates an OS-backed runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures its output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	if cmd.Env != nil {
		execCmd.Env = cmd.Env
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{
			Command:  cmd.String(),
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
		}
	}
	return result, fmt.Errorf(messages.ShellStartFailedFmt, cmd.String(), err)
}

// Stream executes the command with pass-through output.
func (r *ExecRunner) Stream(ctx context.Context, cmd Command, stdout io.Writer, stderr io.Writer) error {
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	if cmd.Env != nil {
		execCmd.Env = cmd.Env
	}
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr

	err := execCmd.Run()
	if err == nil {
		return nil
	}
	// Cancellation is the expected way to stop a watch process; report it
	// as the context error rather than a toolchain failure.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd.String(), ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf(messages.ShellStartFailedFmt, cmd.String(), err)
}
