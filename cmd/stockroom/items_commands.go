package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect and manage ledger items",
	}

	itemsCmd.AddCommand(newItemsListCommand(ctx))
	itemsCmd.AddCommand(newItemsShowCommand(ctx))
	itemsCmd.AddCommand(newItemsDeleteCommand(ctx))

	return itemsCmd
}

func newItemsListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all ledger items",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			items, err := svc.items.List(cmd.Context())
			if err != nil {
				return err
			}
			if filter := strings.TrimSpace(statusFilter); filter != "" {
				filtered := items[:0]
				for _, item := range items {
					if strings.EqualFold(item.Status, filter) {
						filtered = append(filtered, item)
					}
				}
				items = filtered
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items in the ledger.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.ID,
					item.Brand,
					item.Category,
					item.Title,
					item.Status,
					fmt.Sprintf("%d", len(item.Photos)),
					item.DateAdded,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(
				[]string{"ID", "Brand", "Category", "Title", "Status", "Photos", "Added"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show items with this status")
	return cmd
}

func newItemsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one ledger item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			item, err := svc.items.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:           %s\n", item.ID)
			fmt.Fprintf(out, "Brand:        %s\n", item.Brand)
			fmt.Fprintf(out, "Category:     %s\n", item.Category)
			fmt.Fprintf(out, "Title:        %s\n", item.Title)
			fmt.Fprintf(out, "Size:         %s\n", item.Size)
			fmt.Fprintf(out, "Color:        %s\n", item.Color)
			fmt.Fprintf(out, "Condition:    %s\n", item.Condition)
			fmt.Fprintf(out, "Prices:       purchase %s, target %s\n", orDash(item.PurchasePrice), orDash(item.TargetPrice))
			fmt.Fprintf(out, "Status:       %s\n", item.Status)
			fmt.Fprintf(out, "Added:        %s\n", item.DateAdded)
			fmt.Fprintf(out, "Hashtags:     %s\n", item.Hashtags)
			fmt.Fprintf(out, "Asset folder: %s\n", orDash(item.AssetFolder))
			names := make([]string, 0, len(item.Photos))
			for _, photo := range item.Photos {
				names = append(names, photo.Name)
			}
			fmt.Fprintf(out, "Photos:       %s\n", orDash(strings.Join(names, ", ")))
			if item.Description != "" {
				fmt.Fprintf(out, "Description:  %s\n", item.Description)
			}
			if item.Notes != "" {
				fmt.Fprintf(out, "Notes:        %s\n", item.Notes)
			}
			return nil
		},
	}
}

func newItemsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete a ledger item and its replicated photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			unlock, err := ctx.acquireWriteLock()
			if err != nil {
				return err
			}
			defer unlock()

			resp, err := svc.items.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%d photos freed)\n", args[0], len(resp.FreedPhotos))
			return nil
		},
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
