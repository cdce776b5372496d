// Package render decides what a successful research result looks like.
//
// Build turns a result and the details flag into a View. It is pure: the
// same inputs always give the same View, and nothing in this package holds
// state apart from the Details flag itself. The View is then formatted by
// one of three writers:
//
//   - View.Text: plain text, used when output is not a terminal
//   - Terminal: lipgloss-styled text for the CLI and the wizard
//   - Markdown: a Markdown document
//
// The synthesis section is always present. Questions and interview cards
// only appear when details are visible and the result actually has them; an
// absent section gets no heading.
package render
