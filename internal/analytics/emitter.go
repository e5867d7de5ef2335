// Package analytics fans landing page events out to in-process listeners and
// to the optional external sinks attached to a page.
package analytics

import (
	"sync"
	"time"

	"cro-sprint-backend/internal/metrics"
)

// CategoryEvent is the category passed to a Reporter for every emitted event
const CategoryEvent = "event"

// Record is the object pushed onto an EventQueue
type Record struct {
	Event string `json:"event"`
}

// EventQueue is an append-only event record list
type EventQueue interface {
	Push(r Record)
}

// Reporter is a generic event-reporting function
type Reporter interface {
	Report(category string, args ...any)
}

// ReporterFunc adapts a plain function to Reporter
type ReporterFunc func(category string, args ...any)

func (f ReporterFunc) Report(category string, args ...any) { f(category, args...) }

// Event is delivered to local listeners
type Event struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`
}

type Option func(*Emitter)

func WithQueue(q EventQueue) Option {
	return func(e *Emitter) { e.queue = q }
}

func WithReporter(r Reporter) Option {
	return func(e *Emitter) { e.reporter = r }
}

// Emitter is fire-and-forget: no acknowledgement, no retry. Sinks that are
// not attached are skipped.
type Emitter struct {
	now func() time.Time

	mu        sync.RWMutex
	queue     EventQueue
	reporter  Reporter
	listeners map[int]func(Event)
	nextID    int
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		now:       time.Now,
		listeners: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach replaces the external sinks. Either may be nil.
func (e *Emitter) Attach(q EventQueue, r Reporter) {
	e.mu.Lock()
	e.queue = q
	e.reporter = r
	e.mu.Unlock()
}

// Subscribe registers a local listener, called synchronously from Emit
func (e *Emitter) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Emit notifies local listeners, then forwards the name to whichever sinks
// are present at call time
func (e *Emitter) Emit(name string) {
	e.mu.RLock()
	queue, reporter := e.queue, e.reporter
	fns := make([]func(Event), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()

	metrics.AnalyticsEvents.WithLabelValues(name).Inc()

	ev := Event{Name: name, At: e.now()}
	for _, fn := range fns {
		fn(ev)
	}
	if queue != nil {
		queue.Push(Record{Event: name})
	}
	if reporter != nil {
		reporter.Report(CategoryEvent, name)
	}
}
