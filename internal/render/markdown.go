package render

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
)

// Markdown writes the view as a Markdown document.
//
// Each synthesis line becomes its own paragraph. Blank synthesis lines are
// kept as empty paragraphs, which Markdown viewers collapse.
func Markdown(w io.Writer, v View) error {
	md := markdown.NewMarkdown(w)

	md.H1(Title)
	md.PlainText("")

	md.H2(SynthesisHeading)
	md.PlainText("")
	if v.SynthesisUnavailable {
		md.PlainText(markdown.Italic(SynthesisPlaceholder))
		md.PlainText("")
	} else {
		for _, line := range v.Synthesis {
			md.PlainText(line)
			md.PlainText("")
		}
	}

	if len(v.Questions) > 0 {
		md.H2(QuestionsHeading)
		md.PlainText("")
		md.OrderedList(v.Questions...)
		md.PlainText("")
	}

	if len(v.Cards) > 0 {
		md.H2(InterviewsHeading)
		md.PlainText("")
		for _, card := range v.Cards {
			writeCard(md, card)
		}
	}

	return md.Build()
}

func writeCard(md *markdown.Markdown, c Card) {
	md.H3(c.Header)
	md.PlainText("")

	facts := []string{c.TraitsLine()}
	if c.CommunicationStyle != "" {
		facts = append(facts, communicationPrefix+c.CommunicationStyle)
	}
	if c.Background != "" {
		facts = append(facts, backgroundPrefix+c.Background)
	}
	md.BulletList(facts...)
	md.PlainText("")

	for _, p := range c.Pairs {
		md.PlainText(markdown.Bold(p.QuestionLabel()) + " " + oneLine(p.Question))
		md.PlainText("")
		md.PlainText(markdown.Bold(p.AnswerLabel()) + " " + oneLine(p.Answer))
		md.PlainText("")
	}
}

// oneLine folds line breaks so a label and its text stay in one paragraph.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
