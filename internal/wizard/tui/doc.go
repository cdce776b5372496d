// Package tui implements the interactive research wizard.
//
// The wizard is a full-screen Bubble Tea program. It follows the Elm
// architecture: models are values, Update returns the next model plus
// commands, and View is a pure function of the model.
//
// # Screens
//
//   - Discovery: browse mDNS for research services, or type a URL by hand
//   - Research: the five form fields, the submit button, and the result
//
// Both screens use RenderApplicationContainer for a consistent header,
// content area and context-sensitive footer.
//
// # Request Lifecycle
//
// The research screen does not own any request state. It feeds keystrokes
// into a form.Controller and asks it for the phase when rendering:
//
//  1. ctrl+s (or enter on the button) calls Controller.Begin and returns a
//     command that performs the request off the update goroutine
//  2. the command's researchDoneMsg carries the ticket and the outcome
//  3. Update hands both to Controller.Resolve
//
// The submit button is disabled while a request is in flight. Results are
// rendered with render.Terminal inside a bubbles/viewport, so long interview
// transcripts scroll with pgup/pgdn.
//
// # Framework Components
//
//   - bubbles/textinput: form fields (the API key uses EchoPassword)
//   - bubbles/spinner: in-flight and scanning indicators
//   - bubbles/progress: scan progress
//   - bubbles/list: discovered services with filtering
//   - bubbles/viewport: scrolling results
//   - bubbles/help, bubbles/key: context-aware key bindings
//   - lipgloss: styling and layout
//
// # Usage Example
//
//	app := tui.NewAppModel(tui.Options{
//	    Endpoint: "http://localhost:8000",
//	    NewSubmitter: func(endpoint string) form.Submitter {
//	        return research.NewClient(endpoint)
//	    },
//	})
//	program := tea.NewProgram(app, tea.WithAltScreen())
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Logging
//
// The wizard owns the terminal, so logs go to a file (see --log-file) and
// never to stdout.
package tui
