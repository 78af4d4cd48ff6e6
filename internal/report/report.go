// Package report defines the structured progress sink consumed by the build
// core. Rendering (colors, tables) is owned by the CLI layer.
package report

// Reporter receives progress and warning messages during an invocation.
type Reporter interface {
	Progressf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Discard is a Reporter that drops all messages.
type Discard struct{}

// Progressf drops the message.
func (Discard) Progressf(string, ...any) {}

// Warnf drops the message.
func (Discard) Warnf(string, ...any) {}
