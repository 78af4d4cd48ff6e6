package deps

import (
	"errors"

	"github.com/coralpress/themebuild/internal/messages"
)

// Prompter provides user consent for mutating repair actions. The yes/no
// policy is injected here so existence checking stays testable without any
// prompt mechanism.
type Prompter interface {
	// ConfirmCreate asks whether to materialize path from source.
	ConfirmCreate(path string, source string) (bool, error)
	// ConfirmInstall asks whether to run a dependency install in dir.
	ConfirmInstall(dir string) (bool, error)
	// ConfirmOverwrite asks whether to replace path with its template
	// version; diff is a rendered unified diff preview.
	ConfirmOverwrite(path string, diff string) (bool, error)
}

// PromptCreateFunc confirms materializing a file from a template source.
type PromptCreateFunc func(path string, source string) (bool, error)

// PromptInstallFunc confirms running a dependency install.
type PromptInstallFunc func(dir string) (bool, error)

// PromptOverwriteFunc confirms overwriting a file that differs from its template.
type PromptOverwriteFunc func(path string, diff string) (bool, error)

// PromptFuncs adapts optional prompt callbacks into a Prompter.
type PromptFuncs struct {
	ConfirmCreateFunc    PromptCreateFunc
	ConfirmInstallFunc   PromptInstallFunc
	ConfirmOverwriteFunc PromptOverwriteFunc
}

// ConfirmCreate invokes the configured callback or fails when none is set.
func (p PromptFuncs) ConfirmCreate(path string, source string) (bool, error) {
	if p.ConfirmCreateFunc == nil {
		return false, errors.New(messages.DepsPromptRequired)
	}
	return p.ConfirmCreateFunc(path, source)
}

// ConfirmInstall invokes the configured callback or fails when none is set.
func (p PromptFuncs) ConfirmInstall(dir string) (bool, error) {
	if p.ConfirmInstallFunc == nil {
		return false, errors.New(messages.DepsPromptRequired)
	}
	return p.ConfirmInstallFunc(dir)
}

// ConfirmOverwrite invokes the configured callback or fails when none is set.
func (p PromptFuncs) ConfirmOverwrite(path string, diff string) (bool, error) {
	if p.ConfirmOverwriteFunc == nil {
		return false, errors.New(messages.DepsPromptRequired)
	}
	return p.ConfirmOverwriteFunc(path, diff)
}

// AutoConfirm answers yes to every prompt. Used for --yes and the
// auto-confirm config option.
type AutoConfirm struct{}

// ConfirmCreate always consents.
func (AutoConfirm) ConfirmCreate(string, string) (bool, error) { return true, nil }

// ConfirmInstall always consents.
func (AutoConfirm) ConfirmInstall(string) (bool, error) { return true, nil }

// ConfirmOverwrite always consents.
func (AutoConfirm) ConfirmOverwrite(string, string) (bool, error) { return true, nil }
