package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/opentrivia/internal/app"
	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/prefs"
)

func newFetchCmd(opts *app.Options) *cobra.Command {
	var (
		amount     int
		causeError bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one batch of questions and print them",
		Long:  `Fetch one batch of questions and print one line per item. Amount and error injection default to the stored settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			query := queryFromSettings(env.Settings)
			if cmd.Flags().Changed("amount") {
				if amount < 0 {
					return fmt.Errorf("--amount must not be negative")
				}
				query.Amount = amount
			}
			if cmd.Flags().Changed("cause-error") {
				query.CauseError = causeError
			}

			resp, err := env.Client.FetchQuestions(cmd.Context(), query)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "ERROR - %s\n", opentdb.Reason(err))
				return errReported
			}
			if resp.ResponseCode != 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "response code %d: %s\n", resp.ResponseCode, opentdb.ResponseCodeText(resp.ResponseCode))
			}
			printItems(cmd.OutOrStdout(), resp.Results)
			return nil
		},
	}

	cmd.Flags().IntVar(&amount, "amount", prefs.DefaultQuantity, "number of questions to request")
	cmd.Flags().BoolVar(&causeError, "cause-error", false, "point the request at an unresolvable host")
	return cmd
}

func queryFromSettings(s prefs.Settings) opentdb.Query {
	return opentdb.Query{Amount: s.Quantity, CauseError: s.CauseError}
}

func printItems(w io.Writer, items []opentdb.TriviaItem) {
	for _, item := range items {
		fmt.Fprintf(w, "%s | %s | %s\n", item.DecodedCategory(), item.DecodedQuestion(), item.DecodedAnswer())
	}
}
