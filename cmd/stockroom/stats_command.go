package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize staging backlog and completed items",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			stats, err := svc.stats.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Staging photos:      %d\n", stats.TotalPhotos)
			fmt.Fprintf(out, "Completed items:     %d\n", stats.CompletedItems)
			fmt.Fprintf(out, "Estimated remaining: %d\n", stats.EstimatedItemsRemaining)
			return nil
		},
	}
}
