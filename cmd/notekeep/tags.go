package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags in use, sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			for _, tag := range a.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
