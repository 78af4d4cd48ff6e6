package builder

import (
	"context"
	"fmt"

	"github.com/coralpress/themebuild/internal/housekeeping"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/shell"
)

// Deploy invokes the host application's static-asset deploy CLI for one
// theme. A non-zero exit is a hard failure of the build.
func Deploy(ctx context.Context, runner shell.Runner, magentoBin string, root string, themeCode string, sess *Session) error {
	cmd := shell.Command{
		Name: magentoBin,
		Args: []string{"setup:static-content:deploy", "--theme", themeCode, "--force"},
		Dir:  root,
		Env:  sess.Env,
	}
	sess.Reporter.Progressf(messages.BuilderStepDeploy)
	if _, err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf(messages.DeployFailedFmt, err)
	}
	return nil
}

// CleanOutputs runs housekeeping cleaners, downgrading every failure to a
// warning. Housekeeping never aborts an active build.
func CleanOutputs(sess *Session, cleaners ...housekeeping.Cleaner) {
	for _, cleaner := range cleaners {
		removed, err := cleaner.Clean(sess.DryRun)
		if err != nil {
			sess.Reporter.Warnf(messages.CleanFailedFmt, cleaner.Name(), err)
			continue
		}
		if removed == 0 {
			continue
		}
		if sess.DryRun {
			sess.Reporter.Progressf(messages.CleanDryRunFmt, cleaner.Name(), removed)
			continue
		}
		sess.Reporter.Progressf(messages.CleanRemovedFmt, cleaner.Name(), removed)
	}
}
