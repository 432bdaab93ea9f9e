package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep"
)

var (
	noteTitle   string
	noteContent string
	noteTags    string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			if _, err := a.CreateNote(); err != nil {
				return err
			}
			return saveFromFlags(ctx, cmd, a, true)
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note; only the given fields change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *notekeep.App) error {
			if _, err := a.EditNote(args[0]); err != nil {
				return err
			}
			return saveFromFlags(ctx, cmd, a, false)
		})
	},
}

// saveFromFlags copies the field flags into the open draft and saves it.
func saveFromFlags(ctx context.Context, cmd *cobra.Command, a *notekeep.App, all bool) error {
	flags := cmd.Flags()
	if all || flags.Changed("title") {
		if err := a.SetTitle(noteTitle); err != nil {
			return err
		}
	}
	if all || flags.Changed("content") {
		if err := a.SetContent(noteContent); err != nil {
			return err
		}
	}
	if all || flags.Changed("tags") {
		if err := a.SetTagsText(noteTags); err != nil {
			return err
		}
	}

	saved, err := a.SaveDraft(ctx)
	if err != nil {
		return failure(a, err)
	}
	printNote(cmd.OutOrStdout(), saved)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{newCmd, editCmd} {
		c.Flags().StringVar(&noteTitle, "title", "", "Note title")
		c.Flags().StringVar(&noteContent, "content", "", "Note content")
		c.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags")
		rootCmd.AddCommand(c)
	}
}
