package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/linanwx/hal9000/config"
	"github.com/linanwx/hal9000/terminal"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the hal9000 configuration",
	Long:  `Create the hal9000 configuration directory and config file interactively.`,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}

const defaultLogPanelRatio = 0.25

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or delete it first.")
		return nil
	}

	cfg := config.DefaultConfig()

	var (
		name         = cfg.Agent.Name
		location     = cfg.Agent.Location
		mode         = cfg.Terminal.Mode
		showLogPanel bool
	)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Agent name").
				Description("Shown when the agent joins the chat.").
				Validate(requireText("agent name")).
				Value(&name),
			huh.NewInput().
				Title("Starting location").
				Description("Where HAL thinks you are until you /relocate.").
				Validate(requireText("location")).
				Value(&location),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Terminal mode").
				Description("auto picks the full-screen UI when stdin is a terminal.").
				Options(
					huh.NewOption("auto [Recommended]", terminal.ModeAuto),
					huh.NewOption("full-screen UI", terminal.ModeTUI),
					huh.NewOption("plain lines", terminal.ModePlain),
				).
				Value(&mode),
			huh.NewConfirm().
				Title("Show the diagnostics panel?").
				Description("Log output is shown below the chat in the full-screen UI.").
				Value(&showLogPanel),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg.Agent.Name = strings.TrimSpace(name)
	cfg.Agent.Location = strings.TrimSpace(location)
	cfg.Terminal.Mode = mode
	if showLogPanel {
		cfg.Terminal.LogRatio = defaultLogPanelRatio
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("hal9000 initialized successfully!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Agent:", cfg.Agent.Name)
	fmt.Println("  Location:", cfg.Agent.Location)
	fmt.Println("  Mode:", cfg.Terminal.Mode)
	fmt.Println()
	fmt.Println("Run 'hal9000 chat' to start.")
	return nil
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
