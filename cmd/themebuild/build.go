package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/messages"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var all bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   messages.BuildUse,
		Short: messages.BuildShort,
		Long:  messages.BuildLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppEnv(cmd, opts)
			if err != nil {
				return err
			}

			codes := args
			if all {
				themes, err := app.themes.ListAll()
				if err != nil {
					return err
				}
				if len(themes) == 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.BuildNothingFmt, app.root)
					return nil
				}
				codes = make([]string, 0, len(themes))
				for _, theme := range themes {
					codes = append(codes, theme.Code)
				}
			}
			if len(codes) == 0 {
				return errors.New(messages.BuildNoThemes)
			}

			sess := app.newSession()
			sess.DryRun = dryRun
			results := app.driver.BuildThemes(cmd.Context(), codes, sess)
			printSummary(cmd.OutOrStdout(), results)

			failed := 0
			for _, result := range results {
				if !result.Success {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf(messages.BuildFailedFmt, failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, messages.BuildFlagAll)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.BuildFlagDryRun)
	return cmd
}

// printSummary renders one line per processed theme, in processing order.
func printSummary(out io.Writer, results []builder.Result) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, messages.SummaryHeader)
	for _, result := range results {
		label := color.GreenString(messages.SummaryOKLabel)
		if !result.Success {
			label = color.RedString(messages.SummaryFailLabel)
		}
		name := result.BuilderName
		if name == "" {
			name = messages.SummaryNoBuilder
		}
		duration := result.Duration.Round(time.Millisecond).String()
		_, _ = fmt.Fprintf(out, messages.SummaryLineFmt, label, result.ThemeCode, name, duration, result.Message)
	}
}
