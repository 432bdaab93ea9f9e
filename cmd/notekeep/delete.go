package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Toggle the archived flag of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			if err := a.SelectNote(ctx, args[0]); err != nil {
				return err
			}
			n, err := a.ToggleArchive(ctx)
			if err != nil {
				return failure(a, err)
			}
			printNote(cmd.OutOrStdout(), n)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			if err := a.SelectNote(ctx, args[0]); err != nil {
				return err
			}
			if err := a.DeleteSelected(ctx); err != nil {
				return failure(a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(deleteCmd)
}
