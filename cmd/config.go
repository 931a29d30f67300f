package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linanwx/hal9000/config"
)

var configPathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration hal9000 would run with, defaults included.

Use --path to print only the location of config.yaml.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Print the config file path only")
	rootCmd.AddCommand(configCmd)
}

func runConfig(c *cobra.Command, _ []string) error {
	if configPathOnly {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), path)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = c.OutOrStdout().Write(data)
	return err
}
