package form

import "github.com/muurk/research-agent/internal/research"

// Phase is the stage of the request lifecycle. It is one of Idle, InFlight,
// Succeeded or Failed; the set is closed.
type Phase interface {
	// Name returns a short lowercase label for logs.
	Name() string

	phase()
}

// Idle is the phase before the first submission.
type Idle struct{}

// InFlight means a request has been sent and no resolution has been applied
// since. Seq is the ticket that started it.
type InFlight struct {
	Seq uint64
}

// Succeeded holds the result of the most recently applied success.
type Succeeded struct {
	Result research.Result
}

// Failed holds the message shown for the most recently applied failure.
type Failed struct {
	Message string
}

func (Idle) Name() string      { return "idle" }
func (InFlight) Name() string  { return "in_flight" }
func (Succeeded) Name() string { return "succeeded" }
func (Failed) Name() string    { return "failed" }

func (Idle) phase()      {}
func (InFlight) phase()  {}
func (Succeeded) phase() {}
func (Failed) phase()    {}
