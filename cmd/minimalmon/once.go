package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"minimalmon/internal/display"
)

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Print a single snapshot and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			sampler, err := newSampler(slog.Default())
			if err != nil {
				return err
			}

			snap, err := sampler.Sample(cmd.Context())
			if err != nil {
				return err
			}

			display.NewTerminal(cmd.OutOrStdout(), false).Show(snap)
			return nil
		},
	}
}
