package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/form"
	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/render"
	"github.com/muurk/research-agent/internal/research"
)

// Button labels
const (
	SubmitLabel  = "Start Research"
	RunningLabel = "Running Research..."
)

// researchDoneMsg carries the outcome of one submission back to Update.
type researchDoneMsg struct {
	ticket  form.Ticket
	outcome form.Outcome
}

// Focus targets after the input fields
const (
	focusSubmit = iota + 1000
	focusToggle
)

// researchKeyMap defines key bindings for the research screen
type researchKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Press    key.Binding
	Toggle   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k researchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Toggle, k.PageDown, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k researchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press},
		{k.Submit, k.Toggle},
		{k.PageUp, k.PageDown, k.Back, k.Quit},
	}
}

func newResearchKeyMap() researchKeyMap {
	return researchKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "start research"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press button"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "questions & answers"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll"),
		),
		Back: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "services"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ResearchModel is the research form screen: parameter inputs, the submit
// button, and the result area below them.
type ResearchModel struct {
	// Ctrl owns the parameters and the request phase. Inputs mirror it.
	Ctrl      *form.Controller
	Submitter form.Submitter
	Endpoint  string

	// Context for outbound requests
	Context context.Context

	Inputs []textinput.Model
	Focus  int // Index into Inputs, or focusSubmit / focusToggle

	Spinner  spinner.Model
	Viewport viewport.Model
	Help     help.Model
	Keys     researchKeyMap

	Width  int
	Height int

	BackRequested bool
}

// NewResearchModel creates the research screen. ctrl supplies the initial
// field values.
func NewResearchModel(ctx context.Context, ctrl *form.Controller, s form.Submitter, endpoint string) ResearchModel {
	if ctx == nil {
		ctx = context.Background()
	}

	inputs := make([]textinput.Model, len(form.Fields))
	for i, field := range form.Fields {
		in := textinput.New()
		in.Placeholder = field.Placeholder()
		in.Prompt = ""
		in.Width = 50
		if field.Secret() {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if field.Numeric() {
			in.CharLimit = 4
			in.Width = 6
		}
		in.SetValue(ctrl.Raw(field))
		inputs[i] = in
	}
	inputs[0].Focus()

	s2 := spinner.New()
	s2.Spinner = spinner.Dot
	s2.Style = SpinnerStyle

	return ResearchModel{
		Ctrl:      ctrl,
		Submitter: s,
		Endpoint:  endpoint,
		Context:   ctx,
		Inputs:    inputs,
		Spinner:   s2,
		Viewport:  viewport.New(MinTerminalWidth, 10),
		Help:      help.New(),
		Keys:      newResearchKeyMap(),
	}
}

// Init initializes the research screen
func (m ResearchModel) Init() tea.Cmd {
	if _, ok := m.Ctrl.Phase().(form.InFlight); ok {
		return tea.Batch(textinput.Blink, m.Spinner.Tick)
	}
	return textinput.Blink
}

// Update handles messages and updates the model
func (m ResearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		m.refreshResult()
		return m, nil

	case researchDoneMsg:
		m.Ctrl.Resolve(msg.ticket, msg.outcome)
		m.refreshResult()
		return m, nil

	case spinner.TickMsg:
		if _, ok := m.Ctrl.Phase().(form.InFlight); !ok {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m ResearchModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Back):
		m.BackRequested = true
		return m, nil

	case key.Matches(msg, m.Keys.Submit):
		return m.submit()

	case key.Matches(msg, m.Keys.Toggle):
		return m.toggle(), nil

	case key.Matches(msg, m.Keys.Next):
		return m.moveFocus(1), textinput.Blink

	case key.Matches(msg, m.Keys.Prev):
		return m.moveFocus(-1), textinput.Blink

	case key.Matches(msg, m.Keys.PageUp), key.Matches(msg, m.Keys.PageDown):
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.Keys.Press):
		switch m.Focus {
		case focusSubmit:
			return m.submit()
		case focusToggle:
			return m.toggle(), nil
		default:
			return m.moveFocus(1), textinput.Blink
		}
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput feeds msg to the focused input and copies its value
// into the controller.
func (m ResearchModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Focus < 0 || m.Focus >= len(m.Inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.Inputs[m.Focus].Value()
	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	if after := m.Inputs[m.Focus].Value(); after != before {
		m.Ctrl.UpdateField(form.Fields[m.Focus], after)
	}
	return m, cmd
}

// submit begins a submission and returns the command that performs it.
// The submit button is disabled while a request is in flight.
func (m ResearchModel) submit() (tea.Model, tea.Cmd) {
	if _, ok := m.Ctrl.Phase().(form.InFlight); ok {
		return m, nil
	}
	if errs := m.Ctrl.Validate(); len(errs) > 0 {
		logging.Debug("Submitting with validation warnings", zap.Errors("errors", errs))
	}

	ticket := m.Ctrl.Begin()
	m.refreshResult()
	return m, tea.Batch(submitCmd(m.Context, m.Submitter, ticket), m.Spinner.Tick)
}

func (m ResearchModel) toggle() ResearchModel {
	m.Ctrl.ToggleDetails()
	m.refreshResult()
	return m
}

// submitCmd sends one request and reports its outcome as a researchDoneMsg.
func submitCmd(ctx context.Context, s form.Submitter, ticket form.Ticket) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.Research(ctx, ticket.Params)
		return researchDoneMsg{
			ticket:  ticket,
			outcome: form.Outcome{Response: resp, Err: err},
		}
	}
}

// moveFocus cycles focus through the inputs and buttons. The toggle button
// only takes part while a result is shown.
func (m ResearchModel) moveFocus(delta int) ResearchModel {
	targets := make([]int, 0, len(m.Inputs)+2)
	for i := range m.Inputs {
		targets = append(targets, i)
	}
	targets = append(targets, focusSubmit)
	if m.toggleAvailable() {
		targets = append(targets, focusToggle)
	}

	pos := 0
	for i, t := range targets {
		if t == m.Focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(targets)) % len(targets)
	m.Focus = targets[pos]

	for i := range m.Inputs {
		if i == m.Focus {
			m.Inputs[i].Focus()
		} else {
			m.Inputs[i].Blur()
		}
	}
	return m
}

func (m ResearchModel) toggleAvailable() bool {
	_, ok := m.Ctrl.Phase().(form.Succeeded)
	return ok
}

// resultWidth is the usable width inside the application container.
func (m ResearchModel) resultWidth() int {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}
	return max(width-6, render.MinWidth)
}

// resize gives the result viewport whatever height the form leaves over.
func (m *ResearchModel) resize() {
	m.Viewport.Width = m.resultWidth()
	height := m.Height - lipgloss.Height(m.renderForm()) - 8 // Header, footer and borders
	m.Viewport.Height = max(height, 5)
}

// refreshResult re-renders the result area from the controller's phase.
func (m *ResearchModel) refreshResult() {
	m.Viewport.SetContent(m.renderResult())
	if _, ok := m.Ctrl.Phase().(form.InFlight); ok {
		m.Viewport.GotoTop()
	}
	if m.Focus == focusToggle && !m.toggleAvailable() {
		m.Focus = focusSubmit
	}
}

// View renders the research screen
func (m ResearchModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderForm(),
		"",
		m.Viewport.View(),
	)
	return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
}

func (m ResearchModel) renderForm() string {
	var b strings.Builder

	b.WriteString(RenderSubtitle("Endpoint: " + m.Endpoint))
	b.WriteString("\n\n")

	for i, field := range form.Fields {
		focused := i == m.Focus
		marker := "  "
		if focused {
			marker = SelectedMenuItemStyle.UnsetPadding().Render("→ ")
		}
		b.WriteString(marker)
		b.WriteString(FieldLabelStyle(focused).Render(field.String()))
		b.WriteString(m.Inputs[i].View())
		if field.Numeric() && !research.ParseCount(m.Inputs[i].Value()).Valid {
			b.WriteString(" " + lipgloss.NewStyle().Foreground(WarningColor).Render("⚠ not a number"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	_, inFlight := m.Ctrl.Phase().(form.InFlight)
	label := SubmitLabel
	if inFlight {
		label = m.Spinner.View() + " " + RunningLabel
	}
	buttons := RenderButton(label, m.Focus == focusSubmit, inFlight)
	if m.toggleAvailable() {
		buttons += "  " + RenderButton(render.ToggleLabel(m.Ctrl.DetailsVisible()), m.Focus == focusToggle, false)
	}
	b.WriteString("  " + buttons)

	return b.String()
}

// renderResult renders the phase-dependent area below the form.
func (m ResearchModel) renderResult() string {
	width := m.resultWidth()

	switch ph := m.Ctrl.Phase().(type) {
	case form.InFlight:
		return SubtitleStyle.Render(fmt.Sprintf("Request #%d sent, waiting for the research service...", ph.Seq))

	case form.Failed:
		return ErrorBoxStyle.Width(width - 4).Render("✗ " + ph.Message)

	case form.Succeeded:
		v, _ := m.Ctrl.View()
		return lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.UnsetPadding().Render(render.Title),
			render.Terminal(v, width),
		)

	default:
		return SubtitleStyle.Render(fmt.Sprintf(
			"Fill in the form and press ctrl+s. Sample size %d-%d, questions %d-%d.",
			research.MinSampleSize, research.MaxSampleSize,
			research.MinQuestionsPerInterview, research.MaxQuestionsPerInterview,
		))
	}
}
