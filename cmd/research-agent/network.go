package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/config"
	"github.com/muurk/research-agent/internal/discovery"
	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/research"
	"github.com/muurk/research-agent/internal/ui"
	"github.com/muurk/research-agent/internal/urls"
	"github.com/muurk/research-agent/internal/version"
)

// pingTimeout bounds the health check made for each discovered service.
const pingTimeout = 3 * time.Second

// Network command flags
var (
	scanTimeout  int
	announceName string
	announcePort int
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(announceCmd)
}

// scanCmd discovers research services on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for research services on the network",
	Long: `Scan for research services using mDNS/DNS-SD discovery.

Every service found is checked with a health request and recorded in the
config file, so it can be picked in the wizard later.`,
	Example: `  # Scan using the configured timeout
  research-agent scan

  # Longer scan for busy networks
  research-agent scan --timeout 15`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner()
	if scanTimeout > 0 {
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	} else if d := cfg.Preferences.DiscoverTimeoutDuration(); d > 0 {
		scanner.Timeout = d
	}

	printer := ui.NewPrinter(os.Stdout)
	printer.PrintHeader("Service Scan", "research-agent scan", []ui.Param{
		{Key: "Service type", Value: discovery.ServiceType},
		{Key: "Timeout", Value: scanner.Timeout.String()},
	})
	printer.PrintWait("Scanning for research services", "listening for mDNS announcements")

	services, err := scanner.Scan(cmd.Context())
	if err != nil {
		printer.PrintFailure("Scan failed", err.Error(), scanTroubleshooting)
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		printer.PrintFailure("No services found", "No research services answered within "+scanner.Timeout.String(), scanTroubleshooting)
		return nil
	}

	details := make([]ui.Param, 0, len(services))
	reachable := 0
	for _, svc := range services {
		status := "reachable"
		if err := ping(cmd.Context(), svc); err != nil {
			status = research.ShortMessage(err)
		} else {
			reachable++
			cfg.UpdateServiceLastSeen(svc.Instance, svc.BaseURL())
		}
		details = append(details, ui.Param{Key: svc.Instance, Value: svc.BaseURL() + " (" + status + ")"})
	}

	if reachable > 0 {
		if err := cfg.Save(); err != nil {
			logging.Warn("Failed to save discovered services", zap.Error(err))
		}
	}

	title := fmt.Sprintf("Found %d service(s), %d reachable", len(services), reachable)
	if reachable == len(services) {
		printer.PrintSuccess(title, details)
	} else {
		printer.PrintWarning(title, details)
	}

	printer.Println("Use 'research-agent --endpoint <url>' to run against a service")
	printer.Println("Use 'research-agent wizard --discover' to pick one interactively")
	return nil
}

var scanTroubleshooting = []string{
	"Ensure the research service is running and announced (research-agent announce)",
	"Verify this computer is on the same network segment as the service",
	"Check that the firewall allows mDNS (UDP port 5353)",
	"Try increasing --timeout for slower networks",
	"Use --endpoint to specify the service URL manually if discovery fails",
	"See " + urls.Troubleshooting,
}

func ping(ctx context.Context, svc *discovery.Service) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := research.NewClient(svc.BaseURL()).Ping(ctx)
	if err != nil {
		logging.Debug("Discovered service failed health check",
			zap.String("instance", svc.Instance),
			zap.Error(err),
		)
	}
	return err
}

// announceCmd advertises a local research service
var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Advertise a research service on this host",
	Long: `Advertise a research service running on this host over mDNS.

The research service does not announce itself. Run this next to it so that
'scan' and 'wizard --discover' on other machines can find it. The
announcement is withdrawn on Ctrl+C.`,
	Example: `  # Announce the service on the default port
  research-agent announce

  # Announce under a custom name and port
  research-agent announce --name lab --port 9000`,
	Args: cobra.NoArgs,
	RunE: runAnnounce,
}

func init() {
	announceCmd.Flags().StringVar(&announceName, "name", "", "Instance name (default: hostname)")
	announceCmd.Flags().IntVar(&announcePort, "port", discovery.DefaultPort, "Port the research service listens on")
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	name := announceName
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to read hostname, use --name: %w", err)
		}
		name = host
	}

	text := []string{
		"path=" + research.ResearchPath,
		"version=" + version.Version,
	}

	announcement, err := discovery.Announce(name, announcePort, text)
	if err != nil {
		return err
	}
	defer announcement.Shutdown()

	printer := ui.NewPrinter(os.Stdout)
	printer.PrintSuccess("Announcing research service", []ui.Param{
		{Key: "Instance", Value: name},
		{Key: "Service type", Value: discovery.ServiceType},
		{Key: "Port", Value: strconv.Itoa(announcePort)},
	})
	printer.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logging.Info("mDNS announcement stopped", zap.String("instance", name))
	return nil
}
