package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coralpress/themebuild/internal/messages"
)

// consoleReporter renders driver progress and warnings to the command output.
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out}
}

// Progressf prints one progress line. Theme headers arrive pre-marked with
// the "==>" prefix and get emphasis; step lines are indented under them.
func (r *consoleReporter) Progressf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if strings.HasPrefix(line, "==>") {
		_, _ = fmt.Fprintln(r.out, color.CyanString(line))
		return
	}
	_, _ = fmt.Fprintln(r.out, "    "+line)
}

// Warnf prints one warning line.
func (r *consoleReporter) Warnf(format string, args ...any) {
	line := fmt.Sprintf(messages.WarnFmt, fmt.Sprintf(format, args...))
	_, _ = fmt.Fprintln(r.out, color.YellowString(line))
}
