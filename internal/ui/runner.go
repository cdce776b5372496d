package ui

import (
	"context"
	"io"
	"time"

	"github.com/muurk/research-agent/internal/form"
	"github.com/muurk/research-agent/internal/research"
)

// RunnerConfig holds configuration for one non-interactive research run
type RunnerConfig struct {
	Title    string    // e.g., "Research Run"
	Command  string    // e.g., "research-agent run"
	Endpoint string    // Shown in the header
	Quiet    bool      // Skip header and boxes, print nothing
	Output   io.Writer // Default: os.Stdout
}

// Runner orchestrates the header → wait → result flow for one submission
// made through a form controller.
type Runner struct {
	config  RunnerConfig
	printer *Printer
}

// NewRunner creates a new runner
func NewRunner(config RunnerConfig) *Runner {
	return &Runner{
		config:  config,
		printer: NewPrinter(config.Output),
	}
}

// Printer returns the printer the runner writes through
func (r *Runner) Printer() *Printer {
	return r.printer
}

// Run submits the controller's current parameters through s and prints the
// outcome. It returns the phase the controller settled in.
func (r *Runner) Run(ctx context.Context, ctrl *form.Controller, s form.Submitter) form.Phase {
	rec := &recorder{next: s}

	if !r.config.Quiet {
		r.printer.PrintHeader(r.config.Title, r.config.Command,
			ResearchParams(r.config.Endpoint, ctrl.Parameters()))
		r.printer.PrintWait("Running research", "this can take a few minutes")
	}

	start := time.Now()
	phase := ctrl.Submit(ctx, rec)
	duration := time.Since(start).Round(time.Millisecond)

	if r.config.Quiet {
		return phase
	}

	switch ph := phase.(type) {
	case form.Succeeded:
		var message string
		if rec.resp != nil {
			message = rec.resp.Message
		}
		details := append(ResultSummary(ph.Result, message), Param{Key: "Duration", Value: duration.String()})
		r.printer.PrintSuccess("Research complete", details)
	case form.Failed:
		r.printer.PrintFailure(FailureTitle(rec.err), ph.Message, research.TroubleshootingHint(rec.err))
	}
	return phase
}

// recorder keeps the last response and error so the result box can show
// details the controller's phases do not carry.
type recorder struct {
	next form.Submitter
	resp *research.Response
	err  error
}

func (r *recorder) Research(ctx context.Context, params research.RequestParameters) (*research.Response, error) {
	r.resp, r.err = r.next.Research(ctx, params)
	return r.resp, r.err
}

// FailureTitle names the kind of failure for the result box. A nil err is an
// application failure reported by the service itself.
func FailureTitle(err error) string {
	switch {
	case err == nil:
		return "Research failed"
	case research.IsNetworkError(err):
		return "Research service unreachable"
	case research.IsHTTPError(err):
		return "Research service error"
	case research.IsParseError(err):
		return "Invalid response from research service"
	case research.IsValidationError(err):
		return "Invalid research request"
	default:
		return "Research failed"
	}
}
