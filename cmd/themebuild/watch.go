package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/coralpress/themebuild/internal/messages"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.WatchUse,
		Short: messages.WatchShort,
		Long:  messages.WatchLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppEnv(cmd, opts)
			if err != nil {
				return err
			}

			// Interrupt cancels the context, which terminates the external
			// watch process.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			sess := app.newSession()
			sess.Stdout = cmd.OutOrStdout()
			sess.Stderr = cmd.ErrOrStderr()

			result := app.driver.WatchTheme(ctx, args[0], sess)
			if !result.Success {
				return errors.New(result.Message)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	return cmd
}
