package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizmd/quizmd/internal/config"
	"github.com/quizmd/quizmd/internal/logging"
	"github.com/quizmd/quizmd/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quizmd",
	Short:        "Markdown quiz modules with spaced repetition",
	Long:         "Quizmd parses quiz modules written in Markdown, validates and repairs them, and drives spaced-repetition review sessions in the terminal.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZMD_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/quizmd/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose diagnostic logging")
	rootCmd.PersistentFlags().Bool("strict", false, "Treat warnings and duplicate IDs as failures")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves defaults, config file and environment, then applies
// flag overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Log = "dev"
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger for the resolved config.
func newLogger(cfg config.Config) (*zap.SugaredLogger, error) {
	return logging.New(cfg.Log)
}

// openStore opens the progress store using the --db flag or config value
// (highest priority), then the QUIZMD_DB env var, then the default XDG path.
func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.DB
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	return store.Open(path)
}
