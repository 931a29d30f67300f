package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linanwx/hal9000/app"
	"github.com/linanwx/hal9000/config"
	"github.com/linanwx/hal9000/logger"
	"github.com/linanwx/hal9000/terminal"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the chat with HAL",
	Long: `Start the chat with HAL.

The full-screen terminal UI is used when stdin is a terminal; otherwise lines
are read from stdin one by one, so scripts can be piped in.

Examples:
  hal9000 chat
  hal9000 chat --location "pod bay"
  printf 'hi\nWhere am I?\n/quit\n' | hal9000 chat`,
	RunE: runChat,
}

type chatOptions struct {
	plain    bool
	tui      bool
	location string
	tick     time.Duration
	logRatio float64
}

func init() {
	addChatFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

// chatFlags holds flag values per command so root and chat can share them.
var chatFlags = map[*cobra.Command]*chatOptions{}

func addChatFlags(c *cobra.Command) {
	opts := &chatOptions{}
	chatFlags[c] = opts
	c.Flags().BoolVar(&opts.plain, "plain", false, "Force the plain line-based terminal")
	c.Flags().BoolVar(&opts.tui, "tui", false, "Force the full-screen terminal UI")
	c.Flags().StringVar(&opts.location, "location", "", "Starting location (overrides config)")
	c.Flags().DurationVar(&opts.tick, "tick", 0, "Agent update interval (overrides config)")
	c.Flags().Float64Var(&opts.logRatio, "log-panel", 0, "Share of the TUI used for diagnostics, 0 hides it")
	c.MarkFlagsMutuallyExclusive("plain", "tui")
}

func runChat(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	if err := applyChatOverrides(c, cfg); err != nil {
		return err
	}

	term := terminal.Options{}
	if opts := chatFlags[c]; opts != nil {
		switch {
		case opts.plain:
			term.Mode = terminal.ModePlain
		case opts.tui:
			term.Mode = terminal.ModeTUI
		}
	}

	application, err := app.New(cfg, term)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	return application.Run(ctx)
}

// applyChatOverrides copies explicitly set flags onto cfg.
func applyChatOverrides(c *cobra.Command, cfg *config.Config) error {
	opts := chatFlags[c]
	if opts == nil {
		return nil
	}
	flags := c.Flags()
	if flags.Changed("location") {
		cfg.Agent.Location = opts.location
	}
	if flags.Changed("tick") {
		cfg.Timer.Interval = opts.tick.String()
	}
	if flags.Changed("log-panel") {
		cfg.Terminal.LogRatio = opts.logRatio
	}
	return cfg.Validate()
}
