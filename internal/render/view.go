package render

import (
	"strconv"
	"strings"

	"github.com/muurk/research-agent/internal/research"
)

// Fixed display text.
const (
	Title                = "Research Analysis"
	SynthesisHeading     = "Key Insights"
	QuestionsHeading     = "Interview Questions"
	InterviewsHeading    = "Interview Responses"
	SynthesisPlaceholder = "No synthesis available"
	ShowDetailsLabel     = "Show Questions & Answers"
	HideDetailsLabel     = "Hide Questions & Answers"
	traitsPrefix         = "Traits: "
	communicationPrefix  = "Communication style: "
	backgroundPrefix     = "Background: "
)

// View is everything the renderer decided to show for one result.
//
// Synthesis is always populated: either one entry per line of the synthesis
// text (blank lines included) or, when there is none, SynthesisUnavailable is
// set and Synthesis holds only the placeholder. Questions and Cards are nil
// unless details are visible and the result carries a non-empty list.
type View struct {
	Synthesis            []string
	SynthesisUnavailable bool
	DetailsVisible       bool
	Questions            []string
	Cards                []Card
}

// Card is one interview as displayed.
type Card struct {
	Header             string
	Traits             string
	CommunicationStyle string
	Background         string
	Pairs              []Pair
}

// Pair is a question and its answer sharing a 1-based index.
type Pair struct {
	Index    int
	Question string
	Answer   string
}

// QuestionLabel returns "Q<n>:".
func (p Pair) QuestionLabel() string {
	return "Q" + strconv.Itoa(p.Index) + ":"
}

// AnswerLabel returns "A<n>:".
func (p Pair) AnswerLabel() string {
	return "A" + strconv.Itoa(p.Index) + ":"
}

// Build computes the view for a successful result. It is a pure function of
// its arguments; a nil result renders like an empty one.
func Build(result *research.Result, detailsVisible bool) View {
	v := View{DetailsVisible: detailsVisible}

	if result.HasSynthesis() {
		v.Synthesis = SplitLines(result.Synthesis)
	} else {
		v.SynthesisUnavailable = true
		v.Synthesis = []string{SynthesisPlaceholder}
	}

	if !detailsVisible || result == nil {
		return v
	}

	if len(result.Questions) > 0 {
		v.Questions = append([]string(nil), result.Questions...)
	}

	if len(result.Interviews) > 0 {
		v.Cards = make([]Card, 0, len(result.Interviews))
		for _, iv := range result.Interviews {
			v.Cards = append(v.Cards, NewCard(iv))
		}
	}

	return v
}

// NewCard builds the display card for one interview.
func NewCard(iv research.Interview) Card {
	p := iv.Persona
	card := Card{
		Header:             PersonaHeader(p),
		Traits:             p.Traits.String(),
		CommunicationStyle: p.CommunicationStyle,
		Background:         p.Background,
	}
	for i, qa := range iv.Responses {
		card.Pairs = append(card.Pairs, Pair{Index: i + 1, Question: qa.Question, Answer: qa.Answer})
	}
	return card
}

// PersonaHeader formats "Name (age, job)".
func PersonaHeader(p research.Persona) string {
	return p.Name + " (" + string(p.Age) + ", " + p.Job + ")"
}

// SplitLines splits text on line breaks, keeping blank lines. A "\r" before
// each break is dropped.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ToggleLabel returns the label for the details toggle in its current state.
func ToggleLabel(visible bool) string {
	if visible {
		return HideDetailsLabel
	}
	return ShowDetailsLabel
}

// HasDetails reports whether the view shows anything beyond the synthesis.
func (v View) HasDetails() bool {
	return len(v.Questions) > 0 || len(v.Cards) > 0
}

// TraitsLine returns "Traits: ..." for the card.
func (c Card) TraitsLine() string {
	return traitsPrefix + c.Traits
}

// Text renders the view as plain text, one paragraph per line.
func (v View) Text() string {
	var b strings.Builder

	b.WriteString(SynthesisHeading)
	b.WriteString("\n\n")
	for _, line := range v.Synthesis {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.Questions) > 0 {
		b.WriteString("\n")
		b.WriteString(QuestionsHeading)
		b.WriteString("\n\n")
		for i, q := range v.Questions {
			b.WriteString(strconv.Itoa(i+1) + ". " + q + "\n")
		}
	}

	if len(v.Cards) > 0 {
		b.WriteString("\n")
		b.WriteString(InterviewsHeading)
		b.WriteString("\n")
		for _, card := range v.Cards {
			b.WriteString("\n")
			b.WriteString(card.Header + "\n")
			b.WriteString(card.TraitsLine() + "\n")
			if card.CommunicationStyle != "" {
				b.WriteString(communicationPrefix + card.CommunicationStyle + "\n")
			}
			if card.Background != "" {
				b.WriteString(backgroundPrefix + card.Background + "\n")
			}
			for _, pair := range card.Pairs {
				b.WriteString(pair.QuestionLabel() + " " + pair.Question + "\n")
				b.WriteString(pair.AnswerLabel() + " " + pair.Answer + "\n")
			}
		}
	}

	return b.String()
}
