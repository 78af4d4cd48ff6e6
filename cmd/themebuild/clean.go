package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/housekeeping"
	"github.com/coralpress/themebuild/internal/messages"
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Long:  messages.CleanLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppEnv(cmd, opts)
			if err != nil {
				return err
			}

			var cleaners []housekeeping.Cleaner
			for _, code := range args {
				if _, ok := app.themes.ResolvePath(code); !ok {
					return fmt.Errorf(messages.NotInstalledFmt, code)
				}
				cleaners = append(cleaners,
					housekeeping.NewStaticAssetCleaner(app.root, code),
					housekeeping.NewPreprocessedCleaner(app.root, code),
					housekeeping.NewSymlinkCleaner(app.root, code),
				)
			}
			if app.cfg.Clean.PageCacheEnabled() {
				cleaners = append(cleaners, housekeeping.NewPageCacheCleaner(app.root))
			}
			if app.cfg.Clean.TempEnabled() {
				cleaners = append(cleaners, housekeeping.NewTempCleaner(app.root))
			}
			if app.cfg.Clean.GeneratedEnabled() {
				cleaners = append(cleaners, housekeeping.NewGeneratedCleaner(app.root))
			}

			sess := app.newSession()
			sess.DryRun = dryRun
			builder.CleanOutputs(sess, cleaners...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.CleanFlagDryRun)
	return cmd
}
