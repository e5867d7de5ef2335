package booking

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"cro-sprint-backend/internal/analytics"
	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/metrics"
)

// New browsing context parameters for the fallback path
const (
	FallbackTarget   = "_blank"
	FallbackFeatures = "noopener,noreferrer"
)

// LaunchMode says how a booking trigger reached the scheduler
type LaunchMode string

const (
	LaunchPopup  LaunchMode = "popup"
	LaunchNewTab LaunchMode = "new_tab"
)

// Launch describes the one scheduler launch performed by a trigger
type Launch struct {
	Mode     LaunchMode
	URL      string
	Target   string
	Features string
}

type PopupOptions struct {
	URL string `json:"url"`
}

// SchedulingWidget is the popup entry point of the loaded widget script
type SchedulingWidget interface {
	InitPopupWidget(opts PopupOptions)
}

// Opener opens a URL in a new browsing context
type Opener interface {
	Open(url, target, features string)
}

// Message is one inbound cross-window message
type Message struct {
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data"`
}

type Options struct {
	URL       string
	Widget    SchedulingWidget
	Opener    Opener
	Analytics *analytics.Emitter
	Logger    *slog.Logger
}

// Pipeline owns the booked flag of one page
type Pipeline struct {
	url       string
	opener    Opener
	analytics *analytics.Emitter
	log       *slog.Logger

	mu     sync.RWMutex
	widget SchedulingWidget

	booked     atomic.Bool
	loadedOnce sync.Once

	subMu       sync.Mutex
	unsubscribe func()
}

func NewPipeline(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	em := opts.Analytics
	if em == nil {
		em = analytics.NewEmitter()
	}
	return &Pipeline{
		url:       opts.URL,
		widget:    opts.Widget,
		opener:    opts.Opener,
		analytics: em,
		log:       log,
	}
}

func (p *Pipeline) URL() string { return p.url }

// Booked never reverts once true
func (p *Pipeline) Booked() bool { return p.booked.Load() }

func (p *Pipeline) WidgetLoaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.widget != nil
}

// TriggerBooking records the click, then opens exactly one of the widget
// popup or a new browsing context, depending on whether the widget is
// loaded. The returned Launch describes the path taken.
func (p *Pipeline) TriggerBooking() Launch {
	p.analytics.Emit(domain.EventCTABookCallClick)

	p.mu.RLock()
	widget := p.widget
	p.mu.RUnlock()

	if widget != nil {
		widget.InitPopupWidget(PopupOptions{URL: p.url})
		return Launch{Mode: LaunchPopup, URL: p.url}
	}
	p.log.Debug("Scheduling widget not loaded, opening fallback", "url", p.url)
	if p.opener != nil {
		p.opener.Open(p.url, FallbackTarget, FallbackFeatures)
	}
	return Launch{Mode: LaunchNewTab, URL: p.url, Target: FallbackTarget, Features: FallbackFeatures}
}

// ScriptLoaded installs the widget. scheduler_loaded fires on the first call only.
func (p *Pipeline) ScriptLoaded(w SchedulingWidget) {
	p.mu.Lock()
	p.widget = w
	p.mu.Unlock()

	p.loadedOnce.Do(func() {
		p.analytics.Emit(domain.EventSchedulerLoaded)
	})
}

// HandleMessage classifies an inbound message and fires booking_confirmed on
// the first confirmation
func (p *Pipeline) HandleMessage(msg Message) Classification {
	c := Classify(msg.Data)
	metrics.BookingMessages.WithLabelValues(c.String()).Inc()

	if c == BookingConfirmed && p.booked.CompareAndSwap(false, true) {
		p.log.Info("Booking confirmed", "origin", msg.Origin)
		p.analytics.Emit(domain.EventBookingConfirmed)
	}
	return c
}

// Mount registers the message listener on ch. Mounting again replaces the
// previous registration.
func (p *Pipeline) Mount(ch MessageChannel) {
	unsubscribe := ch.Subscribe(func(msg Message) { p.HandleMessage(msg) })

	p.subMu.Lock()
	prev := p.unsubscribe
	p.unsubscribe = unsubscribe
	p.subMu.Unlock()

	if prev != nil {
		prev()
	}
}

// Unmount deregisters the message listener
func (p *Pipeline) Unmount() {
	p.subMu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.subMu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
