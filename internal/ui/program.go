package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/muurk/research-agent/internal/render"
	"github.com/muurk/research-agent/internal/research"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands should output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params []Param) {
	p.Println(NewHeader(title, command, params).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details []Param) {
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details []Param) {
	p.Println(NewWarningResult(title, details).SetWidth(p.width).Render())
}

// PrintError prints an error result box. Troubleshooting tips come from
// the error's classification.
func (p *Printer) PrintError(title string, err error) {
	p.PrintFailure(title, research.FailureMessage(err), research.TroubleshootingHint(err))
}

// PrintFailure prints an error result box with an explicit message.
func (p *Printer) PrintFailure(title, message string, troubleshooting []string) {
	r := NewFailureResult(title, nil, troubleshooting).SetWidth(p.width)
	r.Message = message
	p.Println(r.Render())
}

// PrintWait prints a styled "please wait" line for a long-running request.
// The hint sets expectations, e.g. "this can take a few minutes".
func (p *Printer) PrintWait(message, hint string) {
	line := WaitStyle.Render(WaitMarker + " " + message)
	if hint != "" {
		line += " " + WaitHintStyle.Render("("+hint+")")
	}
	p.Println(line)
	p.Newline()
}

// PrintView prints a research result with the terminal renderer.
func (p *Printer) PrintView(v render.View) {
	p.Newline()
	p.Println(render.Terminal(v, p.width))
}

// ResultSummary lists the counts shown in the success box for a result.
func ResultSummary(result research.Result, message string) []Param {
	synthesis := "yes"
	if !result.HasSynthesis() {
		synthesis = "no"
	}
	details := []Param{
		{Key: "Interviews", Value: strconv.Itoa(len(result.Interviews))},
		{Key: "Questions", Value: strconv.Itoa(len(result.Questions))},
		{Key: "Synthesis", Value: synthesis},
	}
	if message != "" {
		details = append(details, Param{Key: "Message", Value: message})
	}
	return details
}
