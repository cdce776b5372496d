package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/config"
	"github.com/muurk/research-agent/internal/discovery"
	"github.com/muurk/research-agent/internal/form"
	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/render"
	"github.com/muurk/research-agent/internal/research"
	"github.com/muurk/research-agent/internal/ui"
	"github.com/muurk/research-agent/internal/wizard/tui"
)

// Output formats for run and render
const (
	formatTerminal = "terminal"
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// Research command flags
var (
	wizardDiscover bool
	wizardService  string

	topic         string
	demographic   string
	sampleSize    string
	numQuestions  string
	showDetails   bool
	outputFormat  string
	renderDetails bool
	renderFormat  string
)

func init() {
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
}

// wizardCmd launches the interactive TUI form
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive research form",
	Long: `Launch an interactive TUI for submitting research requests.

The form collects the API key, research topic, target demographic, sample
size and questions per interview. Results are shown below the form; the
questions and interview transcripts can be expanded once a run succeeds.

This is the recommended way to run research for most users.`,
	Example: `  # Launch the form against the configured endpoint
  research-agent wizard
  # Or simply (wizard is default):
  research-agent

  # Pick a service discovered on the local network first
  research-agent wizard --discover

  # Open the form on one announced service by instance name
  research-agent wizard --service lab

  # Use a specific service
  research-agent --endpoint http://192.168.1.20:8000`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().BoolVar(&wizardDiscover, "discover", false, "Choose a research service via mDNS discovery first")
	wizardCmd.Flags().StringVar(&wizardService, "service", "", "Resolve this mDNS instance name and use it as the endpoint")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctrl := newController(cfg)
	if key := config.APIKeyFromEnv(); key != "" {
		ctrl.UpdateField(form.FieldCredential, key)
	}

	recordService := func(svc *discovery.Service) {
		cfg.UpdateServiceLastSeen(svc.Instance, svc.BaseURL())
		if err := cfg.Save(); err != nil {
			logging.Warn("Failed to record selected service", zap.Error(err))
		}
	}

	endpoint := resolveEndpoint(cfg)
	if wizardService != "" {
		scanner := discovery.NewScanner()
		if d := cfg.Preferences.DiscoverTimeoutDuration(); d > 0 {
			scanner.Timeout = d
		}
		fmt.Printf("Looking for research service %q (timeout: %v)...\n", wizardService, scanner.Timeout)

		svc, err := findService(cmd.Context(), scanner.Find, cfg, wizardService)
		if err != nil {
			return err
		}
		recordService(svc)
		endpoint = svc.BaseURL()
	}

	timeout := resolveTimeout(cmd, cfg)
	opts := tui.Options{
		Context:     cmd.Context(),
		Controller:  ctrl,
		Endpoint:    endpoint,
		Discover:    wizardDiscover && wizardService == "",
		ScanTimeout: cfg.Preferences.DiscoverTimeoutDuration(),
		NewSubmitter: func(endpoint string) form.Submitter {
			return newClient(endpoint, timeout)
		},
		OnServiceSelected: recordService,
	}

	p := tea.NewProgram(tui.NewAppModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	return nil
}

// findFunc resolves one mDNS instance; discovery.Scanner.Find in production.
type findFunc func(ctx context.Context, instance string) (*discovery.Service, error)

// findService resolves instance on the network. When it does not answer,
// the last URL recorded for it in the config is used instead.
func findService(ctx context.Context, find findFunc, cfg *config.Config, instance string) (*discovery.Service, error) {
	svc, err := find(ctx, instance)
	if err == nil {
		return svc, nil
	}

	known := cfg.GetService(instance)
	if known == nil || known.LastURL == "" {
		return nil, fmt.Errorf("failed to find research service: %w", err)
	}

	logging.Warn("Service not found, using last known URL",
		zap.String("instance", instance),
		zap.String("url", known.LastURL),
		zap.Error(err),
	)
	return serviceFromURL(instance, known.LastURL)
}

// serviceFromURL rebuilds a Service from a recorded base URL.
func serviceFromURL(instance, raw string) (*discovery.Service, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid recorded URL %q for %s", raw, instance)
	}

	port := discovery.DefaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port in recorded URL %q: %w", raw, err)
		}
	}

	return &discovery.Service{
		Instance:     instance,
		Hostname:     u.Hostname(),
		IP:           u.Hostname(),
		Port:         port,
		DiscoveredAt: time.Now(),
	}, nil
}

// runCmd submits one research request without the TUI
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one research request",
	Long: `Submit a single research request and print the result.

The API key is read from ` + config.APIKeyEnvVar + `. When it is unset the key is
prompted for without echo.

Progress and the summary box are written to stdout for the terminal format
and to stderr otherwise, so text, markdown and json output can be redirected
to a file. The command exits with status 1 when the research fails.`,
	Example: `  # Interview 4 personas with 4 questions each (defaults)
  research-agent run --topic "Plant-based snacks" --demographic "Students 18-24"

  # Larger run, include questions and interview transcripts
  research-agent run --topic "Remote work tools" --demographic "Team leads" \
    --sample-size 8 --questions 6 --details

  # Save a Markdown report
  research-agent run --topic "Meal kits" --demographic "Parents" \
    --details --format markdown > report.md`,
	Args: cobra.NoArgs,
	RunE: runResearch,
}

func init() {
	runCmd.Flags().StringVar(&topic, "topic", "", "Research topic (required)")
	runCmd.Flags().StringVar(&demographic, "demographic", "", "Target demographic (required)")
	runCmd.Flags().StringVar(&sampleSize, "sample-size", "", fmt.Sprintf("Number of personas to interview, %d-%d (default from config)",
		research.MinSampleSize, research.MaxSampleSize))
	runCmd.Flags().StringVar(&numQuestions, "questions", "", fmt.Sprintf("Questions per interview, %d-%d (default from config)",
		research.MinQuestionsPerInterview, research.MaxQuestionsPerInterview))
	runCmd.Flags().BoolVar(&showDetails, "details", false, "Include questions and interview transcripts")
	runCmd.Flags().StringVar(&outputFormat, "format", formatTerminal, "Output format (terminal, text, markdown, json)")
}

func runResearch(cmd *cobra.Command, args []string) error {
	if err := checkFormat(outputFormat); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	credential := config.APIKeyFromEnv()
	if credential == "" {
		credential, err = ui.NewPrompter(nil, nil).Secret("API key")
		if errors.Is(err, ui.ErrNoInput) {
			return fmt.Errorf("an API key is required: set %s or enter it when prompted", config.APIKeyEnvVar)
		}
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}

	ctrl := newController(cfg)
	ctrl.UpdateField(form.FieldCredential, credential)
	ctrl.UpdateField(form.FieldTopic, topic)
	ctrl.UpdateField(form.FieldTargetDemographic, demographic)
	if sampleSize != "" {
		ctrl.UpdateField(form.FieldSampleSize, sampleSize)
	}
	if numQuestions != "" {
		ctrl.UpdateField(form.FieldQuestionsPerInterview, numQuestions)
	}

	// The service owns validation; problems are reported but never block.
	for _, problem := range ctrl.Validate() {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", problem)
		logging.Warn("Submitting parameters that failed validation", zap.Error(problem))
	}

	endpoint := resolveEndpoint(cfg)
	var progress io.Writer = os.Stdout
	if outputFormat != formatTerminal {
		progress = os.Stderr
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:    "Research Run",
		Command:  "research-agent run",
		Endpoint: endpoint,
		Output:   progress,
	})

	phase := runner.Run(cmd.Context(), ctrl, newClient(endpoint, resolveTimeout(cmd, cfg)))

	switch ph := phase.(type) {
	case form.Succeeded:
		if showDetails {
			ctrl.ToggleDetails()
		}
		view, _ := ctrl.View()
		noteMissingDetails(os.Stderr, showDetails, view)
		return writeView(os.Stdout, outputFormat, view, ph.Result)
	case form.Failed:
		return fmt.Errorf("research failed: %s", ph.Message)
	default:
		return fmt.Errorf("research ended in unexpected state %q", phase.Name())
	}
}

// renderCmd renders a saved response payload
var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a saved research response",
	Long: `Render a research response previously saved as JSON.

The payload is decoded exactly like a live response, so responses saved with
curl or 'run --format json' render the same way as in the wizard. Use "-" to
read from stdin.`,
	Example: `  # Render the synthesis only
  research-agent render response.json

  # Render everything as Markdown
  research-agent render response.json --details --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderDetails, "details", false, "Include questions and interview transcripts")
	renderCmd.Flags().StringVar(&renderFormat, "format", formatTerminal, "Output format (terminal, text, markdown, json)")
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := checkFormat(renderFormat); err != nil {
		return err
	}

	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := research.DecodeResponse(data)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !resp.Success {
		reason := resp.FailureReason()
		ui.NewPrinter(os.Stderr).PrintFailure("Saved research failed", reason, nil)
		return fmt.Errorf("saved research failed: %s", reason)
	}

	view := render.Build(&resp.Result, renderDetails)
	noteMissingDetails(os.Stderr, renderDetails, view)
	return writeView(os.Stdout, renderFormat, view, resp.Result)
}

// noteMissingDetails tells the user when --details had nothing to add.
func noteMissingDetails(w io.Writer, requested bool, view render.View) {
	if requested && !view.HasDetails() {
		fmt.Fprintln(w, "Note: the result has no questions or interviews to show")
	}
}

func checkFormat(format string) error {
	switch format {
	case formatTerminal, formatText, formatMarkdown, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (use %s)", format,
		strings.Join([]string{formatTerminal, formatText, formatMarkdown, formatJSON}, ", "))
}

// writeView prints a successful result. The json format writes a successful
// response in the service's wire shape, which render reads back.
func writeView(w io.Writer, format string, view render.View, result research.Result) error {
	switch format {
	case formatText:
		_, err := io.WriteString(w, view.Text())
		return err
	case formatMarkdown:
		return render.Markdown(w, view)
	case formatJSON:
		data, err := json.MarshalIndent(research.Response{Success: true, Result: result}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		ui.NewPrinter(w).PrintView(view)
		return nil
	}
}

// newController builds the form with the configured defaults and policy.
func newController(cfg *config.Config) *form.Controller {
	policy := form.LastWriteWins
	if cfg.Preferences.DiscardStale {
		policy = form.DiscardStale
	}
	return form.NewController(
		form.WithDefaults(cfg.Preferences.DefaultSampleSize, cfg.Preferences.DefaultNumQuestions),
		form.WithPolicy(policy),
		form.WithObserver(func(from, to form.Phase) {
			logging.Debug("Form phase changed",
				zap.String("from", from.Name()),
				zap.String("to", to.Name()),
			)
		}),
	)
}

func newClient(endpoint string, timeout time.Duration) *research.Client {
	client := research.NewClient(endpoint)
	client.SetTimeout(timeout)
	return client
}

// resolveEndpoint prefers --endpoint over the configured endpoint.
func resolveEndpoint(cfg *config.Config) string {
	if endpointFlag != "" {
		return endpointFlag
	}
	return cfg.Preferences.Endpoint
}

// resolveTimeout prefers --timeout over the configured request timeout.
func resolveTimeout(cmd *cobra.Command, cfg *config.Config) time.Duration {
	if cmd.Flags().Changed("timeout") {
		return time.Duration(requestTimeout) * time.Second
	}
	return cfg.Preferences.RequestTimeoutDuration()
}
