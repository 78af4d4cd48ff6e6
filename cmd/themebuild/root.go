package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coralpress/themebuild/internal/approot"
	"github.com/coralpress/themebuild/internal/builder"
	"github.com/coralpress/themebuild/internal/builder/fallback"
	"github.com/coralpress/themebuild/internal/builder/gruntless"
	"github.com/coralpress/themebuild/internal/builder/tailwind"
	"github.com/coralpress/themebuild/internal/config"
	"github.com/coralpress/themebuild/internal/deps"
	"github.com/coralpress/themebuild/internal/messages"
	"github.com/coralpress/themebuild/internal/orchestrate"
	"github.com/coralpress/themebuild/internal/registry"
	"github.com/coralpress/themebuild/internal/shell"
)

var getwd = os.Getwd

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	rootDir    string
	configPath string
	assumeYes  bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.rootDir, "root", "", messages.RootFlagRoot)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&opts.assumeYes, "yes", "y", false, messages.RootFlagYes)
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, messages.RootFlagNoColor)

	cmd.AddCommand(newBuildCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newCleanCmd(opts))
	return cmd
}

// appEnv bundles the collaborators wired for one invocation.
type appEnv struct {
	root     string
	cfg      *config.Config
	themes   *registry.Registry
	driver   *orchestrate.Driver
	reporter *consoleReporter
	// extraEnv holds namespaced .env additions for toolchain processes.
	extraEnv []string
}

// newAppEnv resolves the project root, loads configuration, and wires the
// strategy registry behind a driver. Registration order decides resolution:
// the grunt family first, then Tailwind, then the per-theme fallback.
func newAppEnv(cmd *cobra.Command, opts *rootOptions) (*appEnv, error) {
	root, err := resolveRoot(opts)
	if err != nil {
		return nil, err
	}

	paths := config.DefaultPaths(root)
	configPath := opts.configPath
	if configPath == "" {
		configPath = paths.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	extraEnv, err := config.LoadEnv(paths.EnvPath)
	if err != nil {
		return nil, err
	}

	reporter := newConsoleReporter(cmd.OutOrStdout())
	runner := shell.NewExecRunner()
	checker := deps.NewChecker(runner, newPrompter(opts, cfg), reporter)

	builders := builder.NewRegistry(
		gruntless.New(root, cfg, runner, checker),
		tailwind.New(root, cfg, runner, checker),
		fallback.New(root, cfg, runner, checker),
	)
	themes := registry.New(root)

	return &appEnv{
		root:     root,
		cfg:      cfg,
		themes:   themes,
		driver:   orchestrate.New(themes, builders, reporter),
		reporter: reporter,
		extraEnv: extraEnv,
	}, nil
}

// newSession creates the invocation session with the toolchain environment.
func (a *appEnv) newSession() *builder.Session {
	sess := builder.NewSession(a.reporter)
	if len(a.extraEnv) > 0 {
		sess.Env = append(os.Environ(), a.extraEnv...)
	}
	return sess
}

// resolveRoot uses --root when given, otherwise discovers the project root
// upwards from the working directory.
func resolveRoot(opts *rootOptions) (string, error) {
	if opts.rootDir != "" {
		return filepath.Abs(opts.rootDir)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	root, found, err := approot.Find(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(messages.RootMissingProject)
	}
	return root, nil
}
