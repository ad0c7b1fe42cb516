package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPhotosCommand(ctx *commandContext) *cobra.Command {
	var withScores bool

	cmd := &cobra.Command{
		Use:   "photos",
		Short: "List staging photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if withScores {
				scored, err := svc.library.Scored(cmd.Context())
				if err != nil {
					return err
				}
				if len(scored) == 0 {
					fmt.Fprintln(out, "Staging folder is empty.")
					return nil
				}
				rows := make([][]string, 0, len(scored))
				for _, entry := range scored {
					rows = append(rows, []string{
						entry.Name,
						entry.Size,
						entry.Modified,
						strconv.Itoa(entry.Score),
					})
				}
				fmt.Fprintln(out, renderRows([]string{"Name", "Size", "Modified", "Score"}, rows))
				return nil
			}

			entries, err := svc.library.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Staging folder is empty.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, entry.Size, entry.Modified})
			}
			fmt.Fprintln(out, renderRows([]string{"Name", "Size", "Modified"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withScores, "scores", false, "Rank photos by listing quality score")
	return cmd
}
