package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrNoInput is returned when a prompt reads nothing.
var ErrNoInput = errors.New("no input")

var promptStyle = lipgloss.NewStyle().
	Foreground(WarningColor).
	Bold(true)

// Prompter reads answers to interactive questions. Secrets are read without
// echo when in is a terminal.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter. Nil arguments default to stdin and stderr,
// so prompts never mix with output meant for a pipe.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Prompter{in: in, out: out}
}

// Secret prompts for a value without echoing it.
func (p *Prompter) Secret(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, promptStyle.Render(label+": "))

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		if len(b) == 0 {
			return "", ErrNoInput
		}
		return string(b), nil
	}

	return p.readLine()
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is a no.
func (p *Prompter) Confirm(question string) bool {
	_, _ = fmt.Fprint(p.out, promptStyle.Render(question+" [y/N]: "))
	answer, err := p.readLine()
	if err != nil {
		_, _ = fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		_, _ = fmt.Fprintln(p.out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
		return false
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := bufio.NewReader(p.in).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", ErrNoInput
	}
	return line, nil
}
