package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/research-agent/internal/config"
	"github.com/muurk/research-agent/internal/ui"
)

var configForce bool

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the preferences file",
	Long: `Manage the research-agent preferences file.

The file lives at ` + config.GetConfigPath() + `
and never contains API keys.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return err
		}

		data, err := cfg.Marshal(path)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default preferences.

An existing file is only replaced after confirmation. The --endpoint flag,
when given, is stored as the default endpoint.`,
	Example: `  # Create the default file
  research-agent config init

  # Point the default endpoint at a lab machine
  research-agent config init --endpoint http://192.168.1.20:8000`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file without asking")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.GetConfigPath()

	if _, err := os.Stat(path); err == nil && !configForce {
		if !ui.NewPrompter(nil, nil).Confirm(fmt.Sprintf("Overwrite %s?", path)) {
			return nil
		}
	}

	cfg := config.NewConfig()
	if endpointFlag != "" {
		cfg.Preferences.Endpoint = endpointFlag
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	ui.NewPrinter(os.Stdout).PrintSuccess("Configuration written", []ui.Param{
		{Key: "Path", Value: path},
		{Key: "Endpoint", Value: cfg.Preferences.Endpoint},
	})
	return nil
}
