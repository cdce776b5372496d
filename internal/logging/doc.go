// Package logging provides structured logging for research-agent.
//
// This package wraps zap logger with convenience functions used by the
// research client and the CLI. Logging is silent unless a level is given on
// the command line or in RESEARCH_AGENT_LOG_LEVEL.
//
// # Log Levels
//
//   - Debug: Response bodies (truncated), state transitions
//   - Info: Requests sent, responses received
//   - Warn: Failed submissions, discovery problems
//   - Error: Startup failures
//
// # Structured Logging
//
//	logging.Info("Research submitted",
//	    zap.String("topic", params.Topic),
//	    logging.Credential("api_key", params.Credential),
//	)
//
// API keys must only be logged through Credential, which masks them.
//
// # Configuration
//
//	if err := logging.Initialize("debug", ""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The wizard owns the terminal, so it passes a file path as the second
// argument and log lines go there instead of stdout.
package logging
