// Package ui provides terminal output components for the research-agent CLI.
//
// The interactive wizard lives in internal/wizard/tui. This package covers
// the "run once and exit" commands (run, render, scan, config): it renders
// their output with Lipgloss but never waits on the user, apart from the
// credential and confirmation prompts in Prompter.
//
// # Components
//
//   - Header: command banner with ordered parameters, API key masked
//   - Result: success, failure and warning boxes
//   - Runner: header → wait → result flow around one form submission
//
// Example:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:    "Research Run",
//	    Command:  "research-agent run",
//	    Endpoint: client.Endpoint(),
//	})
//	phase := runner.Run(ctx, ctrl, client)
//	if _, ok := phase.(form.Succeeded); !ok {
//	    os.Exit(1)
//	}
//
// # Logging Integration
//
// Logging is controlled by RESEARCH_AGENT_LOG_LEVEL or --log-level. When
// neither is set zap is silent, so only the curated output is printed.
package ui
