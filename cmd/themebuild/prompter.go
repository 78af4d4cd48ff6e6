package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/coralpress/themebuild/internal/config"
	"github.com/coralpress/themebuild/internal/deps"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/terminal"
)

var runConfirmFunc = func(form *huh.Form) error { return form.Run() }
var isInteractiveFunc = terminal.IsInteractive

// newPrompter selects the consent policy for repair actions: automatic
// consent with --yes or the auto-confirm config option, interactive prompts
// otherwise.
func newPrompter(opts *rootOptions, cfg *config.Config) deps.Prompter {
	if opts.assumeYes || cfg.AutoConfirm {
		return deps.AutoConfirm{}
	}
	return &consolePrompter{}
}

// consolePrompter asks yes/no questions through huh forms.
type consolePrompter struct{}

func (p *consolePrompter) confirm(title string, description string) (bool, error) {
	if !isInteractiveFunc() {
		return false, errors.New(messages.PromptNonInteractive)
	}
	ok := true
	field := huh.NewConfirm().Title(title).Value(&ok)
	if description != "" {
		field = field.Description(description)
	}
	if err := runConfirmFunc(huh.NewForm(huh.NewGroup(field))); err != nil {
		return false, err
	}
	return ok, nil
}

// ConfirmCreate asks whether to materialize path from source.
func (p *consolePrompter) ConfirmCreate(path string, source string) (bool, error) {
	return p.confirm(fmt.Sprintf(messages.DepsPromptCreateFmt, path, source), "")
}

// ConfirmInstall asks whether to run a dependency install in dir.
func (p *consolePrompter) ConfirmInstall(dir string) (bool, error) {
	return p.confirm(fmt.Sprintf(messages.DepsPromptInstallFmt, dir), "")
}

// ConfirmOverwrite asks whether to replace path, showing the diff preview.
func (p *consolePrompter) ConfirmOverwrite(path string, diff string) (bool, error) {
	return p.confirm(fmt.Sprintf(messages.DepsPromptOverwriteFmt, path), diff)
}
