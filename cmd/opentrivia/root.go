package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/five82/opentrivia/internal/app"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	cmd := &cobra.Command{
		Use:           "opentrivia",
		Short:         "Browse Open Trivia DB questions in the terminal",
		Long:          `OpenTrivia fetches trivia questions from the Open Trivia DB and lets you filter them by category, refresh them and inspect their answers.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/opentrivia/config.toml)")
	flags.StringVar(&opts.SettingsBackend, "settings-backend", "", "settings store: toml, sqlite or memory")
	flags.StringVar(&opts.SettingsPath, "settings-path", "", "settings file or database path")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep settings in memory for this run only")

	cmd.AddCommand(newFetchCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newSettingsCmd(opts))
	return cmd
}
