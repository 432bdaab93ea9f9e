package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notekeep/internal/config"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	apiURL     string
	backend    string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notekeep",
	Short: "A notes client that works signed out and syncs when signed in",
	Long: `Notekeep keeps a collection of notes.
Signed out, notes live in a local store on this machine. Signed in, every
change is confirmed by the notes API before it shows up locally.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			loaded.Storage.Dir = dataDir
		}
		if apiURL != "" {
			loaded.API.BaseURL = apiURL
		}
		if backend != "" {
			loaded.Storage.Backend = backend
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Notes API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Local store backend: file, sqlite or memory")
}
