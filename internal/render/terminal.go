package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared with the wizard.
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// MinWidth is the narrowest width Terminal wraps to.
const MinWidth = 40

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginTop(1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Italic(true)

	paragraphStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	personaStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	traitsStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	questionLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	answerLabelStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1).
			MarginTop(1)
)

// Terminal renders the view with lipgloss styles, wrapped to width.
func Terminal(v View, width int) string {
	if width < MinWidth {
		width = MinWidth
	}

	var sections []string

	sections = append(sections, headingStyle.Render(SynthesisHeading))
	if v.SynthesisUnavailable {
		sections = append(sections, placeholderStyle.Width(width).Render(SynthesisPlaceholder))
	} else {
		for _, line := range v.Synthesis {
			sections = append(sections, paragraphStyle.Width(width).Render(line))
		}
	}

	if len(v.Questions) > 0 {
		sections = append(sections, headingStyle.Render(QuestionsHeading))
		for i, q := range v.Questions {
			marker := strconv.Itoa(i+1) + ". "
			body := paragraphStyle.Width(width - len(marker)).Render(q)
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, marker, body))
		}
	}

	if len(v.Cards) > 0 {
		sections = append(sections, headingStyle.Render(InterviewsHeading))
		// Border and padding take four columns.
		inner := width - 4
		for _, card := range v.Cards {
			sections = append(sections, cardStyle.Width(width-2).Render(renderCard(card, inner)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderCard(c Card, width int) string {
	lines := []string{
		personaStyle.Render(c.Header),
		traitsStyle.Width(width).Render(c.TraitsLine()),
	}
	if c.CommunicationStyle != "" {
		lines = append(lines, traitsStyle.Width(width).Render(communicationPrefix+c.CommunicationStyle))
	}
	if c.Background != "" {
		lines = append(lines, traitsStyle.Width(width).Render(backgroundPrefix+c.Background))
	}
	for _, p := range c.Pairs {
		lines = append(lines, "")
		lines = append(lines, labeled(questionLabelStyle, p.QuestionLabel(), p.Question, width))
		lines = append(lines, labeled(answerLabelStyle, p.AnswerLabel(), p.Answer, width))
	}
	return strings.Join(lines, "\n")
}

func labeled(style lipgloss.Style, label, text string, width int) string {
	prefix := style.Render(label) + " "
	body := paragraphStyle.Width(max(width-lipgloss.Width(prefix), 1)).Render(text)
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, body)
}
