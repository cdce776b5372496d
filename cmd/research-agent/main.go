// Research-agent is a client for an AI-assisted market research service.
//
// The service generates personas for a target demographic, interviews each
// of them about a topic and synthesizes the answers. This tool collects the
// request parameters, submits them and renders the synthesis, the questions
// asked and every interview transcript.
//
// Usage:
//
//	research-agent [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'research-agent --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/research-agent/internal/config"
	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	endpointFlag   string
	logLevel       string
	logFile        string
	requestTimeout int
)

var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "AI Market Research Client",
	Long: `A client for the AI market research service.

Submits a research topic and target demographic, waits while the service
interviews generated personas, and renders the synthesis along with the
questions and interview transcripts.

If no command is specified, the interactive wizard will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Set here rather than in the literal: setupLogging refers to rootCmd.
	rootCmd.PersistentPreRunE = setupLogging

	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Research service base URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.LogLevelEnvVar+" or silent)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().IntVar(&requestTimeout, "timeout", 0, "Research request timeout in seconds, 0 for none (default from config)")

	rootCmd.AddCommand(versionCmd)
}

// setupLogging initializes the global logger before any command runs. The
// wizard owns the terminal, so its logs go to a file unless --log-file says
// otherwise.
func setupLogging(cmd *cobra.Command, args []string) error {
	path := logFile
	if path == "" && isWizard(cmd) {
		p, err := config.DefaultLogPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := logging.Initialize(logLevel, path); err != nil {
		return err
	}

	logging.Debug("Logger initialized")
	return nil
}

func isWizard(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == wizardCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("research-agent %s\n", version.Full())
	},
}
