package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/opentrivia/internal/app"
	"github.com/five82/opentrivia/internal/prefs"
)

func newSettingsCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every setting and where its value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()
			return showSettings(cmd.OutOrStdout(), env)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Validate and store one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefs.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			key := args[0]
			updated, err := env.Settings.Apply(key, args[1])
			if err != nil {
				return err
			}
			if err := updated.Save(env.Prefs, key); err != nil {
				return err
			}
			value, _ := updated.Encode(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset [key...]",
		Short: "Remove stored settings so defaults apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Setup(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			keys := args
			if len(keys) == 0 {
				keys = prefs.Keys()
			}
			for _, key := range keys {
				if _, err := prefs.Defaults().Encode(key); err != nil {
					return err
				}
				if err := env.Prefs.Delete(key); err != nil {
					return fmt.Errorf("reset %s: %w", key, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d %s\n", len(keys), pluralize(len(keys), "setting", "settings"))
			return nil
		},
	})

	return cmd
}

func showSettings(w io.Writer, env *app.Env) error {
	for _, key := range prefs.Keys() {
		value, err := env.Settings.Encode(key)
		if err != nil {
			return err
		}
		origin := "default"
		if _, ok, err := env.Prefs.Get(key); err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		} else if ok {
			origin = "stored"
		}
		fmt.Fprintf(w, "%-10s = %-8s (%s)\n", key, value, origin)
	}
	return nil
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
