package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/discovery"
	"github.com/muurk/research-agent/internal/form"
	"github.com/muurk/research-agent/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenResearch  Screen = "research"
)

// Options configures the wizard.
type Options struct {
	// Context bounds every outbound request.
	Context context.Context

	// Controller holds the form state. It is shared across screens so
	// values survive switching services.
	Controller *form.Controller

	// Endpoint is the service base URL used when Discover is false.
	Endpoint string

	// Discover starts on the service picker.
	Discover    bool
	Scan        ScanFunc
	ScanTimeout time.Duration

	// NewSubmitter returns the client for a service base URL. Required.
	NewSubmitter func(endpoint string) form.Submitter

	// OnServiceSelected is called when the user picks a service.
	OnServiceSelected func(svc *discovery.Service)
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	DiscoveryModel DiscoveryModel
	ResearchModel  ResearchModel

	opts Options

	Width  int
	Height int
}

// NewAppModel creates a new application model
func NewAppModel(opts Options) AppModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Controller == nil {
		opts.Controller = form.NewController()
	}

	m := AppModel{opts: opts}
	if opts.Discover {
		m.CurrentScreen = ScreenDiscovery
		m.DiscoveryModel = NewDiscoveryModel(opts.Scan, opts.ScanTimeout)
	} else {
		m.CurrentScreen = ScreenResearch
		m.ResearchModel = m.newResearchModel(opts.Endpoint)
	}
	return m
}

func (m AppModel) newResearchModel(endpoint string) ResearchModel {
	return NewResearchModel(m.opts.Context, m.opts.Controller, m.opts.NewSubmitter(endpoint), endpoint)
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.Init()
	case ScreenResearch:
		return m.ResearchModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case researchDoneMsg:
		// A request can finish after the user went back to the picker.
		// The controller still has to see it.
		if m.CurrentScreen != ScreenResearch {
			m.opts.Controller.Resolve(msg.ticket, msg.outcome)
			return m, nil
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDiscovery:
		updated, c := m.DiscoveryModel.Update(msg)
		m.DiscoveryModel = updated.(DiscoveryModel)
		cmd = c

		if svc := m.DiscoveryModel.GetSelectedService(); svc != nil {
			logging.Info("Research service selected",
				zap.String("instance", svc.Instance),
				zap.String("url", svc.BaseURL()),
			)
			if m.opts.OnServiceSelected != nil {
				m.opts.OnServiceSelected(svc)
			}
			return m.transitionTo(ScreenResearch, svc.BaseURL())
		}

	case ScreenResearch:
		updated, c := m.ResearchModel.Update(msg)
		m.ResearchModel = updated.(ResearchModel)
		cmd = c

		if m.ResearchModel.BackRequested {
			return m.transitionTo(ScreenDiscovery, "")
		}
	}

	return m, cmd
}

// transitionTo switches screens. endpoint is only used for the research
// screen.
func (m AppModel) transitionTo(screen Screen, endpoint string) (tea.Model, tea.Cmd) {
	m.CurrentScreen = screen
	size := tea.WindowSizeMsg{Width: m.Width, Height: m.Height}

	var cmd tea.Cmd
	switch screen {
	case ScreenDiscovery:
		m.DiscoveryModel = NewDiscoveryModel(m.opts.Scan, m.opts.ScanTimeout)
		if m.Width > 0 {
			updated, _ := m.DiscoveryModel.Update(size)
			m.DiscoveryModel = updated.(DiscoveryModel)
		}
		cmd = m.DiscoveryModel.Init()

	case ScreenResearch:
		m.opts.Endpoint = endpoint
		m.ResearchModel = m.newResearchModel(endpoint)
		if m.Width > 0 {
			updated, _ := m.ResearchModel.Update(size)
			m.ResearchModel = updated.(ResearchModel)
		}
		cmd = m.ResearchModel.Init()
	}

	return m, cmd
}

// Endpoint returns the service the research screen is talking to
func (m AppModel) Endpoint() string {
	return m.opts.Endpoint
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.View()
	case ScreenResearch:
		return m.ResearchModel.View()
	default:
		return "Unknown screen"
	}
}
