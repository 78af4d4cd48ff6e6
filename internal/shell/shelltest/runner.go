// Package shelltest provides a scripted shell.Runner for unit tests.
package shelltest

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/coralpress/themebuild/internal/shell"
)

// Response scripts the outcome of a matching command.
type Response struct {
	Result shell.Result
	Err    error
}

// Runner records every invocation and answers from scripted responses keyed
// by command-line prefix. Unscripted commands succeed with empty output. Safe
// for concurrent use.
type Runner struct {
	mu        sync.Mutex
	Calls     []shell.Command
	Responses map[string]Response
}

// NewRunner creates an empty scripted runner.
func NewRunner() *Runner {
	return &Runner{Responses: make(map[string]Response)}
}

// Script registers a response for command lines starting with prefix.
func (r *Runner) Script(prefix string, resp Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[prefix] = resp
}

// CommandLines returns the rendered command line of every recorded call.
func (r *Runner) CommandLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		lines = append(lines, call.String())
	}
	return lines
}

func (r *Runner) record(cmd shell.Command) (Response, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, cmd)
	line := cmd.String()
	for prefix, resp := range r.Responses {
		if strings.HasPrefix(line, prefix) {
			return resp, true
		}
	}
	return Response{}, false
}

// Run records the call and returns the scripted response.
func (r *Runner) Run(_ context.Context, cmd shell.Command) (shell.Result, error) {
	resp, _ := r.record(cmd)
	return resp.Result, resp.Err
}

// Stream records the call, writes any scripted output, and returns the
// scripted outcome. Unscripted commands block until ctx cancellation,
// mirroring a long-running watch process.
func (r *Runner) Stream(ctx context.Context, cmd shell.Command, stdout io.Writer, _ io.Writer) error {
	resp, scripted := r.record(cmd)
	if resp.Result.Stdout != "" {
		_, _ = io.WriteString(stdout, resp.Result.Stdout)
	}
	if scripted {
		return resp.Err
	}
	<-ctx.Done()
	return ctx.Err()
}
