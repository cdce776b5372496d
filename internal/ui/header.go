package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/research-agent/internal/research"
)

// Shown in place of the API key
const (
	CredentialHidden  = "******** (set)"
	CredentialMissing = "<empty>"
)

// Param is one key/value line in a header or result box. Params keep the
// order they are given in.
type Param struct {
	Key   string
	Value string
}

// Header represents a command header with title, command, and parameters.
type Header struct {
	Title   string  // e.g., "RESEARCH RUN"
	Command string  // e.g., "research-agent run"
	Params  []Param // e.g., Endpoint, Topic, Sample size
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params []Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) == 0 {
		return HeaderBorderStyle(width).Render(topSection)
	}

	dividerWidth := width - 6 // Account for border and padding
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := RenderHorizontalDivider(dividerWidth, "─")

	keyWidth := 0
	for _, p := range h.Params {
		keyWidth = max(keyWidth, len(p.Key)+1)
	}

	paramLines := make([]string, 0, len(h.Params))
	for _, p := range h.Params {
		key := HeaderParamKeyStyle.Render(padRight(p.Key+":", keyWidth))
		paramLines = append(paramLines, key+" "+HeaderParamValueStyle.Render(p.Value))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

// ResearchParams lists the parameters of a research run for a header. The
// API key only shows whether one was given.
func ResearchParams(endpoint string, p research.RequestParameters) []Param {
	return []Param{
		{Key: "Endpoint", Value: endpoint},
		{Key: "API key", Value: credentialStatus(p.Credential)},
		{Key: "Topic", Value: p.Topic},
		{Key: "Demographic", Value: p.TargetDemographic},
		{Key: "Sample size", Value: p.SampleSize.String()},
		{Key: "Questions", Value: p.QuestionsPerInterview.String()},
	}
}

// credentialStatus never reveals any part of the key.
func credentialStatus(credential string) string {
	if strings.TrimSpace(credential) == "" {
		return CredentialMissing
	}
	return CredentialHidden
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
