package form

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/research-agent/internal/logging"
	"github.com/muurk/research-agent/internal/render"
	"github.com/muurk/research-agent/internal/research"
)

// Submitter sends one research request. *research.Client implements it.
type Submitter interface {
	Research(ctx context.Context, params research.RequestParameters) (*research.Response, error)
}

// Policy decides what happens when resolutions arrive out of order.
type Policy int

const (
	// LastWriteWins applies every resolution as it arrives, so a slow
	// earlier request can overwrite the result of a newer one.
	LastWriteWins Policy = iota

	// DiscardStale ignores resolutions for tickets older than the most
	// recently issued one.
	DiscardStale
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case LastWriteWins:
		return "last-write-wins"
	case DiscardStale:
		return "discard-stale"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Ticket identifies one submission. Params is the snapshot that was sent.
type Ticket struct {
	Seq    uint64
	Params research.RequestParameters
}

// Outcome is how a submission settled: a decoded response, or the error the
// transport returned.
type Outcome struct {
	Response *research.Response
	Err      error
}

// TransitionFunc observes phase changes. It runs after the controller's lock
// is released and may call back into the controller.
type TransitionFunc func(from, to Phase)

// Option configures a Controller.
type Option func(*Controller)

// WithDefaults seeds the numeric fields.
func WithDefaults(sampleSize, questionsPerInterview int) Option {
	return func(c *Controller) {
		c.setField(FieldSampleSize, strconv.Itoa(sampleSize))
		c.setField(FieldQuestionsPerInterview, strconv.Itoa(questionsPerInterview))
	}
}

// WithPolicy selects how out-of-order resolutions are handled.
func WithPolicy(p Policy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithObserver registers a transition observer.
func WithObserver(fn TransitionFunc) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// Controller owns the form fields and the request lifecycle.
//
// A submission is split in two: Begin moves to InFlight synchronously and
// returns a Ticket, and Resolve applies the outcome later. Submit does both
// around one blocking call. Nothing is ever retried or canceled.
//
// Methods are safe for concurrent use; the lock is never held across a
// network call.
type Controller struct {
	mu sync.Mutex

	raw    [numFields]string
	params research.RequestParameters

	phase   Phase
	details render.Details

	seq    uint64              // last issued ticket
	open   map[uint64]struct{} // tickets begun and not yet resolved
	policy Policy

	observers []TransitionFunc
}

// NewController creates a controller in the Idle phase. Numeric fields start
// at research.DefaultSampleSize and research.DefaultQuestionsPerInterview.
func NewController(opts ...Option) *Controller {
	c := &Controller{phase: Idle{}, open: make(map[uint64]struct{})}
	c.setField(FieldSampleSize, strconv.Itoa(research.DefaultSampleSize))
	c.setField(FieldQuestionsPerInterview, strconv.Itoa(research.DefaultQuestionsPerInterview))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField stores raw input for a field. Text fields are stored verbatim.
// Numeric fields are parsed as base-10 integers; input that does not parse
// is stored as not-a-number rather than rejected. Edits are accepted in
// every phase and never affect a request already sent.
func (c *Controller) UpdateField(field Field, raw string) {
	if !field.valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setField(field, raw)
}

func (c *Controller) setField(field Field, raw string) {
	c.raw[field] = raw
	switch field {
	case FieldCredential:
		c.params.Credential = raw
	case FieldTopic:
		c.params.Topic = raw
	case FieldTargetDemographic:
		c.params.TargetDemographic = raw
	case FieldSampleSize:
		c.params.SampleSize = research.ParseCount(raw)
	case FieldQuestionsPerInterview:
		c.params.QuestionsPerInterview = research.ParseCount(raw)
	}
}

// Raw returns the text last entered for a field.
func (c *Controller) Raw(field Field) string {
	if !field.valid() {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw[field]
}

// Parameters returns the parameters the next submission would send.
func (c *Controller) Parameters() research.RequestParameters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Validate checks the current parameters. Submission does not consult it;
// callers decide whether to block on the result.
func (c *Controller) Validate() []error {
	return research.ValidateParameters(c.Parameters())
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Pending returns how many submissions have begun and not yet resolved.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.open)
}

// Policy returns the resolution policy.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Begin starts a submission: it snapshots the current parameters, clears any
// result or error, hides details and moves to InFlight. It is allowed in every
// phase, including InFlight.
func (c *Controller) Begin() Ticket {
	c.mu.Lock()
	c.seq++
	c.open[c.seq] = struct{}{}
	ticket := Ticket{Seq: c.seq, Params: c.params}
	from := c.phase
	c.phase = InFlight{Seq: ticket.Seq}
	c.details.Hide()
	to := c.phase
	c.mu.Unlock()

	logging.Debug("Research submission started",
		zap.Uint64("seq", ticket.Seq),
		zap.String("topic", ticket.Params.Topic),
		logging.Credential("api_key", ticket.Params.Credential),
	)
	c.notify(from, to)
	return ticket
}

// Resolve applies the outcome of a submission and reports whether it changed
// the phase. Under LastWriteWins every resolution is applied in arrival
// order. Under DiscardStale a resolution for anything but the newest ticket
// is dropped. A ticket resolves at most once; later calls with the same
// ticket, or with one this controller never issued, are ignored.
func (c *Controller) Resolve(ticket Ticket, outcome Outcome) bool {
	c.mu.Lock()
	if _, ok := c.open[ticket.Seq]; !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.open, ticket.Seq)
	if c.policy == DiscardStale && ticket.Seq < c.seq {
		latest := c.seq
		c.mu.Unlock()
		logging.Debug("Stale research resolution discarded",
			zap.Uint64("seq", ticket.Seq),
			zap.Uint64("latest", latest),
		)
		return false
	}

	from := c.phase
	c.phase = phaseFor(outcome)
	c.details.Hide()
	to := c.phase
	c.mu.Unlock()

	if f, ok := to.(Failed); ok {
		logging.Warn("Research submission failed",
			zap.Uint64("seq", ticket.Seq),
			zap.String("message", f.Message),
		)
	} else {
		logging.Info("Research submission succeeded", zap.Uint64("seq", ticket.Seq))
	}
	c.notify(from, to)
	return true
}

// phaseFor maps an outcome onto Succeeded or Failed.
func phaseFor(o Outcome) Phase {
	switch {
	case o.Err != nil:
		return Failed{Message: research.FailureMessage(o.Err)}
	case o.Response == nil:
		return Failed{Message: research.DefaultTransportFailure}
	case o.Response.Success:
		return Succeeded{Result: o.Response.Result}
	default:
		return Failed{Message: o.Response.FailureReason()}
	}
}

// Submit runs one complete submission: Begin, a single call to s, Resolve.
// It returns the phase after the resolution was applied, which under
// LastWriteWins may already have been replaced by a later resolution.
func (c *Controller) Submit(ctx context.Context, s Submitter) Phase {
	ticket := c.Begin()
	resp, err := s.Research(ctx, ticket.Params)
	c.Resolve(ticket, Outcome{Response: resp, Err: err})
	return c.Phase()
}

// ToggleDetails flips the details flag. It only has an effect while a
// result is shown.
func (c *Controller) ToggleDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.phase.(Succeeded); ok {
		c.details.Toggle()
	}
}

// DetailsVisible reports the details flag.
func (c *Controller) DetailsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details.Visible()
}

// View returns the rendered result. ok is false unless the phase is
// Succeeded; no result is ever shown alongside an error.
func (c *Controller) View() (view render.View, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.phase.(Succeeded)
	if !ok {
		return render.View{}, false
	}
	return render.Build(&s.Result, c.details.Visible()), true
}

// ErrorMessage returns the failure message, or "" unless the phase is Failed.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.phase.(Failed); ok {
		return f.Message
	}
	return ""
}

func (c *Controller) notify(from, to Phase) {
	for _, fn := range c.observers {
		fn(from, to)
	}
}
