// Package cmd implements the hal9000 command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linanwx/hal9000/config"
	"github.com/linanwx/hal9000/logger"
)

var configDirFlag string

var rootCmd = &cobra.Command{
	Use:   "hal9000",
	Short: "Talk to HAL9000 in your terminal",
	Long: `hal9000 is a scripted chatbot for the terminal.

Type anything to wake HAL up, ask "Where am I?", and use commands:
  /relocate <place>   tell HAL where you are
  /quit               leave the chat

Running hal9000 without a subcommand starts the chat.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupConfigDir,
	RunE:              runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Config directory (default ~/.hal9000)")
	addChatFlags(rootCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupConfigDir(_ *cobra.Command, _ []string) error {
	config.SetConfigDir(configDirFlag)
	return nil
}

// loadConfig loads config.yaml and initializes the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	return cfg, nil
}
