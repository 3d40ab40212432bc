package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/opentrivia/internal/app"
	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/state"
)

func newWatchCmd(opts *app.Options) *cobra.Command {
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Fetch questions periodically and print a status line per fetch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			return app.Poll(cmd.Context(), state.NewStore(), env.Client, app.PollOptions{
				Interval: interval,
				Count:    count,
				Query: func() opentdb.Query {
					return queryFromSettings(env.Settings)
				},
				OnUpdate: func(s state.Snapshot) {
					fmt.Fprintln(out, watchLine(s))
				},
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "time between fetches")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many fetches (0 runs until interrupted)")
	return cmd
}

func watchLine(s state.Snapshot) string {
	stamp := s.LastUpdated.Format("15:04:05")
	if s.FetchError {
		return fmt.Sprintf("%s %s (%d in a row)", stamp, s.Status, s.ConsecutiveFailures)
	}
	return fmt.Sprintf("%s %s %d items", stamp, s.Status, len(s.Fetched))
}
