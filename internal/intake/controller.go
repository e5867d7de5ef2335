package intake

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/metrics"
)

// ErrBusy is returned when a submission arrives while another one is in flight
var ErrBusy = errors.New("a submission is already in flight")

const unexpectedFailureMessage = "Unexpected failure, please try again."

// CollaboratorError wraps a failure reported by an external collaborator.
// Its message is the collaborator's, unchanged.
type CollaboratorError struct {
	Form string
	Err  error
}

func (e *CollaboratorError) Error() string { return e.Err.Error() }
func (e *CollaboratorError) Unwrap() error { return e.Err }

// Action performs the asynchronous work of one submission and returns the
// success message shown to the user
type Action func(ctx context.Context, values Values) (string, error)

// Snapshot is the observable state of a controller at one instant
type Snapshot struct {
	Form   string `json:"form"`
	Status Status `json:"status"`
	Busy   bool   `json:"busy"`
	Values Values `json:"-"`
}

type Option func(*Controller)

// WithResetOnSuccess resets the form to its initial value after a successful submission
func WithResetOnSuccess() Option {
	return func(c *Controller) { c.resetOnSuccess = true }
}

// Controller owns one form, its status and its busy flag. At most one
// submission is in flight at a time.
type Controller struct {
	name           string
	action         Action
	resetOnSuccess bool
	log            *slog.Logger

	mu        sync.Mutex
	form      *Form
	status    Status
	busy      bool
	listeners map[int]func(Snapshot)
	nextID    int
}

func NewController(name string, fields []Field, action Action, opts ...Option) *Controller {
	c := &Controller{
		name:      name,
		action:    action,
		log:       logger.WithForm(name),
		form:      NewForm(fields...),
		status:    Idle(),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Name() string { return c.name }

func (c *Controller) Fields() []Field { return c.form.Fields() }

// SetField records user input for one field. The form is locked while a
// submission is in flight and returns ErrBusy.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	return c.form.Set(name, value)
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive every state transition. Listeners run
// synchronously on the submitting goroutine and must not call back into
// the controller's Submit.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Submit runs one submission to completion. The busy flag goes true before
// the action starts and false only after the final status is recorded,
// whatever the outcome. Input is rejected while busy, so a reset after
// success never discards edits made during the flight. On failure the form
// keeps its input.
func (c *Controller) Submit(ctx context.Context) (Status, error) {
	c.mu.Lock()
	if c.busy {
		status := c.status
		c.mu.Unlock()
		metrics.FormSubmissions.WithLabelValues(c.name, metrics.OutcomeBusy).Inc()
		return status, ErrBusy
	}

	values := c.form.Values()
	if err := Validate(c.name, c.form.Fields(), values); err != nil {
		c.status = Failure(err.Error())
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		metrics.FormSubmissions.WithLabelValues(c.name, metrics.OutcomeInvalid).Inc()
		c.log.Debug("Submission rejected by validation", "error", err)
		return snap.Status, err
	}

	// A stale message from a previous submission never survives into this one
	c.status = InFlight()
	c.busy = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	start := time.Now()
	msg, err := c.run(ctx, values)
	metrics.SubmissionDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())

	if err != nil {
		c.log.Info("Submission failed", "error", err)
		metrics.FormSubmissions.WithLabelValues(c.name, metrics.OutcomeFailure).Inc()
		status := c.finish(Failure(err.Error()), false)
		return status, &CollaboratorError{Form: c.name, Err: err}
	}

	c.log.Info("Submission succeeded")
	metrics.FormSubmissions.WithLabelValues(c.name, metrics.OutcomeSuccess).Inc()
	return c.finish(Success(msg), c.resetOnSuccess), nil
}

// run invokes the action, clearing the busy flag if it panics
func (c *Controller) run(ctx context.Context, values Values) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.finish(Failure(unexpectedFailureMessage), false)
			panic(r)
		}
	}()
	return c.action(ctx, values)
}

// finish records the final status, then clears busy. Listeners observe the
// two transitions in that order.
func (c *Controller) finish(status Status, reset bool) Status {
	c.mu.Lock()
	c.status = status
	if reset {
		c.form.Reset()
	}
	resolved := c.snapshotLocked()
	c.busy = false
	idle := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(resolved)
	c.notify(idle)
	return status
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Form:   c.name,
		Status: c.status,
		Busy:   c.busy,
		Values: c.form.Values(),
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
