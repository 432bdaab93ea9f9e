package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/view"
)

var (
	listJSON     bool
	listArchived bool
	listTag      string
	listSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			switch {
			case listArchived:
				if err := a.Navigate(view.Archive); err != nil {
					return err
				}
			case listTag != "":
				a.SetFilter(core.TagFilter(listTag))
			}
			if listSearch != "" {
				a.SetQuery(listSearch)
			}

			notes := a.Visible()
			if listJSON {
				return printJSON(cmd.OutOrStdout(), notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "List archived notes only")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter notes by tag")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only notes whose title, content or tags contain the text")
	listCmd.MarkFlagsMutuallyExclusive("archived", "tag")
}
