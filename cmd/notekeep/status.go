package main

import (
	"context"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

type statusReport struct {
	DataDir string `json:"data_dir"`
	Backend string `json:"backend"`
	Store   any    `json:"store,omitempty"`
	Session any    `json:"session"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the session and storage state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.close()

		a, err := e.newApp(context.Background())
		if err != nil {
			return err
		}

		report := statusReport{
			DataDir: e.dir,
			Backend: e.cfg.Storage.Backend,
			Session: a.State(),
		}
		if i, ok := e.store.(introspection.Introspectable); ok {
			report.Store = i.State()
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
