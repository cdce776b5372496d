package tui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/research-agent/internal/discovery"
	"github.com/muurk/research-agent/internal/urls"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	services []*discovery.Service
	err      error
}

// ScanFunc discovers research services. The default browses mDNS.
type ScanFunc func(ctx context.Context) ([]*discovery.Service, error)

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual URL entry mode
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.Confirm, m.Cancel}}
}

// serviceItem wraps a Service for use with bubbles/list
type serviceItem struct {
	service *discovery.Service
	manual  bool
}

// FilterValue implements list.Item
func (s serviceItem) FilterValue() string {
	return s.service.Instance + " " + s.service.IP + " " + s.service.Hostname
}

// Title returns the service name for list display
func (s serviceItem) Title() string {
	if s.manual {
		return "Manual: " + s.service.Instance
	}
	return s.service.Instance
}

// Description returns service details for list display
func (s serviceItem) Description() string {
	return s.service.BaseURL()
}

// serviceDelegate renders services as cards
type serviceDelegate struct {
	width int
}

func (d serviceDelegate) Height() int { return 6 } // Card height including borders

func (d serviceDelegate) Spacing() int { return 1 }

func (d serviceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d serviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(serviceItem)
	if !ok {
		return
	}
	selected := index == m.Index()

	var content strings.Builder
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + si.Title()))
	} else {
		content.WriteString("  " + si.Title())
	}
	content.WriteString("\n\n")

	version := si.service.Version()
	if version == "" {
		version = "Unknown"
	}
	content.WriteString(fmt.Sprintf("  URL:     %s\n", si.service.BaseURL()))
	content.WriteString(fmt.Sprintf("  Version: %s", version))

	cardWidth := min(max(d.width-6, MinTerminalWidth-6), MaxContentWidth-6)
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2).
		Width(cardWidth)
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel is the service picker screen
type DiscoveryModel struct {
	Scan        ScanFunc
	ScanTimeout time.Duration

	Scanning    bool
	ServiceList list.Model
	Selected    bool
	Err         error

	// Manual URL entry state
	ManualMode bool
	URLInput   textinput.Model
	InputErr   error

	Width         int
	Height        int
	Spinner       spinner.Model
	ProgressBar   progress.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	ManualKeys    manualModeKeyMap
}

// NewDiscoveryModel creates a new discovery screen model. A nil scan
// browses mDNS with timeout.
func NewDiscoveryModel(scan ScanFunc, timeout time.Duration) DiscoveryModel {
	if timeout <= 0 {
		timeout = discovery.DefaultScanTimeout
	}
	if scan == nil {
		scan = func(ctx context.Context) ([]*discovery.Service, error) {
			scanner := discovery.NewScanner()
			scanner.Timeout = timeout
			return scanner.Scan(ctx)
		}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	urlInput := textinput.New()
	urlInput.Placeholder = "http://192.168.1.20:8000"
	urlInput.CharLimit = 255
	urlInput.Width = 40

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	serviceList := list.New([]list.Item{}, serviceDelegate{width: MinTerminalWidth}, 0, 0)
	serviceList.Title = "Research Services"
	serviceList.SetShowStatusBar(false)
	serviceList.SetFilteringEnabled(true)
	serviceList.Styles.Title = TitleStyle

	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "use service"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "enter URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	manualKeys := manualModeKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	return DiscoveryModel{
		Scan:        scan,
		ScanTimeout: timeout,
		ServiceList: serviceList,
		URLInput:    urlInput,
		Spinner:     s,
		ProgressBar: progressBar,
		Help:        help.New(),
		Keys:        keys,
		ManualKeys:  manualKeys,
	}
}

// Init starts scanning immediately
func (m DiscoveryModel) Init() tea.Cmd {
	return m.startScan()
}

func (m DiscoveryModel) startScan() tea.Cmd {
	scan := m.Scan
	return tea.Sequence(
		func() tea.Msg { return scanStartMsg{} },
		tea.Batch(
			func() tea.Msg {
				services, err := scan(context.Background())
				return scanCompleteMsg{services: services, err: err}
			},
			m.Spinner.Tick,
		),
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		if m.Scanning {
			// Only manual entry and quit are available while scanning
			switch {
			case key.Matches(msg, m.Keys.Manual):
				return m.enterManualMode(), textinput.Blink
			case key.Matches(msg, m.Keys.Quit):
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ServiceList.SetDelegate(serviceDelegate{width: msg.Width})
		m.ServiceList.SetWidth(msg.Width - 4)
		m.ServiceList.SetHeight(msg.Height - 10) // Leave room for header/footer

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, 0, len(msg.services))
		// Manual entries survive a rescan
		for _, it := range m.ServiceList.Items() {
			if si, ok := it.(serviceItem); ok && si.manual {
				items = append(items, si)
			}
		}
		for _, svc := range msg.services {
			items = append(items, serviceItem{service: svc})
		}
		m.ServiceList.SetItems(items)

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.ManualMode && !m.Scanning {
		m.ServiceList, cmd = m.ServiceList.Update(msg)
	}
	return m, cmd
}

// updateNormalMode handles keyboard input in the service list
func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, every key belongs to the list
	if m.ServiceList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.ServiceList, cmd = m.ServiceList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Enter):
		if m.ServiceList.SelectedItem() != nil {
			m.Selected = true
		}
		return m, nil

	case key.Matches(msg, m.Keys.Rescan):
		m.Err = nil
		return m, m.startScan()

	case key.Matches(msg, m.Keys.Manual):
		return m.enterManualMode(), textinput.Blink
	}

	var cmd tea.Cmd
	m.ServiceList, cmd = m.ServiceList.Update(msg)
	return m, cmd
}

func (m DiscoveryModel) enterManualMode() DiscoveryModel {
	m.ManualMode = true
	m.InputErr = nil
	m.URLInput.SetValue("")
	m.URLInput.Focus()
	return m
}

// updateManualMode handles keyboard input in manual URL entry mode
func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ManualKeys.Cancel):
		m.ManualMode = false
		m.URLInput.Blur()
		return m, nil

	case key.Matches(msg, m.ManualKeys.Confirm):
		svc, err := ManualService(m.URLInput.Value())
		if err != nil {
			m.InputErr = err
			return m, nil
		}
		items := append([]list.Item{serviceItem{service: svc, manual: true}}, m.ServiceList.Items()...)
		m.ServiceList.SetItems(items)
		m.ServiceList.Select(0)
		m.ManualMode = false
		m.URLInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.URLInput, cmd = m.URLInput.Update(msg)
	return m, cmd
}

// ManualService builds a Service from a typed base URL. A missing scheme
// means http and a missing port means the service default.
func ManualService(raw string) (*discovery.Service, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("enter a URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid URL %q", raw)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	port := discovery.DefaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q", p)
		}
	}

	return &discovery.Service{
		Instance:     u.Host,
		Hostname:     u.Hostname(),
		IP:           u.Hostname(),
		Port:         port,
		DiscoveredAt: time.Now(),
	}, nil
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content, helpText string
	switch {
	case m.ManualMode:
		content = m.renderManualEntry()
		helpText = m.Help.View(m.ManualKeys)
	case m.Scanning:
		content = m.renderScanning(width)
		helpText = m.Help.ShortHelpView([]key.Binding{m.Keys.Manual, m.Keys.Quit})
	default:
		content = m.renderResults()
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// renderScanning renders a centered scanning progress display
func (m DiscoveryModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	percent := min(1.0, elapsed.Seconds()/m.ScanTimeout.Seconds())

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(m.Spinner.View()+" SEARCHING FOR RESEARCH SERVICES"),
		SubtitleStyle.Render("Browsing "+discovery.ServiceType+" on the local network..."),
		"",
		m.ProgressBar.ViewAs(percent),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", int(elapsed.Seconds()))),
		"",
	)
	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderResults renders the service list or an empty-state message
func (m DiscoveryModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(troubleshooting())
	case len(m.ServiceList.Items()) == 0:
		warning := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString("  " + warning.Render("⚠ No research services found on your network"))
		b.WriteString("\n\n")
		b.WriteString(troubleshooting())
	default:
		b.WriteString(m.ServiceList.View())
	}

	return b.String()
}

func troubleshooting() string {
	return "  Troubleshooting:\n" +
		"    • Run 'research-agent announce' on the host running the service\n" +
		"    • Check that multicast (UDP 5353) is allowed on this network\n" +
		"    • Press 'm' to enter the service URL by hand\n" +
		"    • See " + urls.Troubleshooting + "\n"
}

// renderManualEntry renders the manual URL entry dialog
func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Enter the research service URL"))
	b.WriteString("\n\n")
	b.WriteString("  URL: ")
	b.WriteString(m.URLInput.View())
	b.WriteString("\n\n")
	if m.InputErr != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(ErrorColor).Render("  " + m.InputErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// GetSelectedService returns the selected service (if any)
func (m DiscoveryModel) GetSelectedService() *discovery.Service {
	if !m.Selected {
		return nil
	}
	if item, ok := m.ServiceList.SelectedItem().(serviceItem); ok {
		return item.service
	}
	return nil
}
