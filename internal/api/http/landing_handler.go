package http

import (
	"net/http"
	"sync"
	"time"

	"cro-sprint-backend/internal/analytics"
	"cro-sprint-backend/internal/booking"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// LandingConfig is the landing page configuration exposed to the browser
type LandingConfig struct {
	CalendlyURL     string `json:"calendly_url"`
	WidgetScriptURL string `json:"widget_script_url"`
	ClarityID       string `json:"clarity_id,omitempty"`
	// DataLayer attaches an in-memory event list to each page
	DataLayer bool `json:"-"`
	// StoreEvents reports events to the analytics event store
	StoreEvents bool `json:"-"`
}

// Command is a side effect the browser performs on behalf of a page
type Command struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Target   string `json:"target,omitempty"`
	Features string `json:"features,omitempty"`
}

const (
	CommandPopup = "popup"
	CommandOpen  = "open"
)

// commandFor converts the launch of one trigger into the browser command
func commandFor(l booking.Launch) Command {
	if l.Mode == booking.LaunchPopup {
		return Command{Type: CommandPopup, URL: l.URL}
	}
	return Command{Type: CommandOpen, URL: l.URL, Target: l.Target, Features: l.Features}
}

// browserWidget stands in for the widget script running in the browser,
// which performs the popup from the Book response
type browserWidget struct{}

func (browserWidget) InitPopupWidget(booking.PopupOptions) {}

// page is one mounted landing page
type page struct {
	pipeline  *booking.Pipeline
	channel   *booking.Channel
	dataLayer *analytics.DataLayer

	mu     sync.Mutex
	events []string
}

func (p *page) recordEvent(ev analytics.Event) {
	p.mu.Lock()
	p.events = append(p.events, ev.Name)
	p.mu.Unlock()
}

type PageView struct {
	ID           string             `json:"id"`
	Config       LandingConfig      `json:"config"`
	Booked       bool               `json:"booked"`
	WidgetLoaded bool               `json:"widget_loaded"`
	Events       []string           `json:"events"`
	DataLayer    []analytics.Record `json:"data_layer,omitempty"`
}

type BookResponse struct {
	Commands []Command `json:"commands"`
}

type MessageResponse struct {
	Classification string `json:"classification"`
	Booked         bool   `json:"booked"`
}

type LandingHandler struct {
	cfg    LandingConfig
	events repository.AnalyticsEventRepository
	pages  *registry[*page]
}

// NewLandingHandler builds the landing surface. events may be nil, in which
// case no page reports to the event store.
func NewLandingHandler(cfg LandingConfig, events repository.AnalyticsEventRepository) *LandingHandler {
	return &LandingHandler{
		cfg:    cfg,
		events: events,
		pages: newRegistry("landing", func(p *page) {
			p.pipeline.Unmount()
		}),
	}
}

func (h *LandingHandler) view(id string, p *page) PageView {
	p.mu.Lock()
	events := make([]string, len(p.events))
	copy(events, p.events)
	p.mu.Unlock()

	view := PageView{
		ID:           id,
		Config:       h.cfg,
		Booked:       p.pipeline.Booked(),
		WidgetLoaded: p.pipeline.WidgetLoaded(),
		Events:       events,
	}
	if p.dataLayer != nil {
		view.DataLayer = p.dataLayer.Records()
	}
	return view
}

func (h *LandingHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *page, bool) {
	id := mux.Vars(r)["id"]
	p, ok := h.pages.Get(id)
	if !ok {
		ErrorResponse(w, http.StatusNotFound, "Page not found")
		return "", nil, false
	}
	return id, p, true
}

// GetConfig handles GET /api/v1/landing/config
func (h *LandingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, h.cfg)
}

// MountPage handles POST /api/v1/landing/pages
func (h *LandingHandler) MountPage(w http.ResponseWriter, r *http.Request) {
	p := &page{channel: booking.NewChannel()}

	id := uuid.NewString()
	emitter := analytics.NewEmitter()
	emitter.Subscribe(p.recordEvent)

	var queue analytics.EventQueue
	if h.cfg.DataLayer {
		p.dataLayer = analytics.NewDataLayer()
		queue = p.dataLayer
	}
	var reporter analytics.Reporter
	if h.cfg.StoreEvents && h.events != nil {
		reporter = analytics.NewStoreReporter(h.events, id, h.cfg.ClarityID)
	}
	emitter.Attach(queue, reporter)

	// The widget is absent until the browser reports the script loaded.
	// The fallback tab is opened by the browser, so there is no opener.
	p.pipeline = booking.NewPipeline(booking.Options{
		URL:       h.cfg.CalendlyURL,
		Analytics: emitter,
		Logger:    logger.WithPage(id),
	})
	p.pipeline.Mount(p.channel)
	h.pages.Put(id, p)

	JSONResponse(w, http.StatusCreated, h.view(id, p))
}

// GetPage handles GET /api/v1/landing/pages/{id}
func (h *LandingHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	JSONResponse(w, http.StatusOK, h.view(id, p))
}

// UnmountPage handles DELETE /api/v1/landing/pages/{id}
func (h *LandingHandler) UnmountPage(w http.ResponseWriter, r *http.Request) {
	if !h.pages.Remove(mux.Vars(r)["id"]) {
		ErrorResponse(w, http.StatusNotFound, "Page not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SchedulerLoaded handles POST /api/v1/landing/pages/{id}/scheduler-loaded
func (h *LandingHandler) SchedulerLoaded(w http.ResponseWriter, r *http.Request) {
	id, p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	p.pipeline.ScriptLoaded(browserWidget{})
	JSONResponse(w, http.StatusOK, h.view(id, p))
}

// Book handles POST /api/v1/landing/pages/{id}/book
func (h *LandingHandler) Book(w http.ResponseWriter, r *http.Request) {
	_, p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	launch := p.pipeline.TriggerBooking()
	JSONResponse(w, http.StatusOK, BookResponse{Commands: []Command{commandFor(launch)}})
}

// PostMessage handles POST /api/v1/landing/pages/{id}/messages. The body
// is the raw cross-window message; its data may be any JSON value.
func (h *LandingHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	_, p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var msg booking.Message
	if err := parseJSONBody(r, &msg); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	p.channel.Publish(msg)

	JSONResponse(w, http.StatusOK, MessageResponse{
		Classification: booking.Classify(msg.Data).String(),
		Booked:         p.pipeline.Booked(),
	})
}

// SweepIdle unmounts pages idle longer than timeout
func (h *LandingHandler) SweepIdle(timeout time.Duration) int {
	return h.pages.SweepIdle(timeout)
}

func (h *LandingHandler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api/v1/landing").Subrouter()
	s.HandleFunc("/config", h.GetConfig).Methods(http.MethodGet)
	s.HandleFunc("/pages", h.MountPage).Methods(http.MethodPost)
	s.HandleFunc("/pages/{id}", h.GetPage).Methods(http.MethodGet)
	s.HandleFunc("/pages/{id}", h.UnmountPage).Methods(http.MethodDelete)
	s.HandleFunc("/pages/{id}/scheduler-loaded", h.SchedulerLoaded).Methods(http.MethodPost)
	s.HandleFunc("/pages/{id}/book", h.Book).Methods(http.MethodPost)
	s.HandleFunc("/pages/{id}/messages", h.PostMessage).Methods(http.MethodPost)
}
