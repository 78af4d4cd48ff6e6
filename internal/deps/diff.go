package deps

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/coralpress/themebuild/internal/messages"
)

// diffMaxLines caps the per-file diff preview shown before overwrite prompts.
const diffMaxLines = 40

// RefreshScaffold reconciles an existing scaffold file with its template.
// A missing file is created through the normal repair protocol. When the file
// exists but differs from the template, the user is shown a truncated unified
// diff and asked to overwrite; declining keeps the local file and is not an
// error.
func (c *Checker) RefreshScaffold(file ScaffoldFile) error {
	local, err := c.Sys.ReadFile(file.Path)
	if err != nil {
		return c.ensureScaffold(file, false)
	}

	_, want, err := c.scaffoldSource(ScaffoldFile{SamplePath: file.SamplePath, Template: file.Template})
	if err != nil {
		return fmt.Errorf(messages.DepsReadTemplateFmt, file.Template, err)
	}
	if bytes.Equal(local, want) {
		c.Reporter.Progressf(messages.DepsUpToDateFmt, file.Path)
		return nil
	}

	diff := renderTruncatedDiff(file.Path+" (current)", file.Path+" (template)", string(local), string(want))
	ok, err := c.Prompter.ConfirmOverwrite(file.Path, diff)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return c.writeScaffold(file, want)
}

func renderTruncatedDiff(fromName string, toName string, fromContent string, toContent string) string {
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) <= diffMaxLines {
		return diff
	}
	truncated := append(lines[:diffMaxLines], fmt.Sprintf("... (truncated to %d lines)", diffMaxLines))
	return strings.Join(truncated, "\n") + "\n"
}
