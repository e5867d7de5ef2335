package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cro-sprint-backend/internal/authclient"
	"cro-sprint-backend/internal/intake"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// visitor is one dashboard browser session
type visitor struct {
	client    *authclient.Client
	dashboard *intake.Dashboard
}

type DashboardHandler struct {
	auth     service.AuthService
	store    service.RecordStore
	visitors *registry[*visitor]
}

func NewDashboardHandler(auth service.AuthService, store service.RecordStore) *DashboardHandler {
	return &DashboardHandler{
		auth:  auth,
		store: store,
		visitors: newRegistry("dashboard", func(v *visitor) {
			v.client.SignOut()
		}),
	}
}

// FormView is the rendered state of one form. Password values are never echoed.
type FormView struct {
	Form   string            `json:"form"`
	Status intake.Status     `json:"status"`
	Text   string            `json:"text"`
	Busy   bool              `json:"busy"`
	Values map[string]string `json:"values"`
}

type VisitorView struct {
	ID            string              `json:"id"`
	Authenticated bool                `json:"authenticated"`
	Email         string              `json:"email,omitempty"`
	Forms         map[string]FormView `json:"forms"`
}

type SubmitResponse struct {
	FormView
	Errors []intake.FieldError `json:"errors,omitempty"`
}

func formView(c *intake.Controller) FormView {
	snap := c.Snapshot()
	values := make(map[string]string, len(snap.Values))
	for _, f := range c.Fields() {
		if f.Kind == intake.KindPassword {
			continue
		}
		values[f.Name] = snap.Values[f.Name]
	}
	return FormView{
		Form:   snap.Form,
		Status: snap.Status,
		Text:   snap.Status.Text(),
		Busy:   snap.Busy,
		Values: values,
	}
}

func (h *DashboardHandler) visitorView(id string, v *visitor) VisitorView {
	view := VisitorView{
		ID: id,
		Forms: map[string]FormView{
			intake.FormLogin:   formView(v.dashboard.Login),
			intake.FormSignup:  formView(v.dashboard.Signup),
			intake.FormProject: formView(v.dashboard.Project),
		},
	}
	if s := v.client.Session(); s != nil {
		view.Authenticated = true
		if s.User != nil {
			view.Email = s.User.Email
		}
	}
	return view
}

func (h *DashboardHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *visitor, bool) {
	id := mux.Vars(r)["id"]
	v, ok := h.visitors.Get(id)
	if !ok {
		ErrorResponse(w, http.StatusNotFound, "Session not found")
		return "", nil, false
	}
	return id, v, true
}

// CreateSession handles POST /api/v1/dashboard/sessions
func (h *DashboardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	client := authclient.New(h.auth)
	v := &visitor{
		client:    client,
		dashboard: intake.NewDashboard(client, h.store),
	}
	id := uuid.NewString()
	h.visitors.Put(id, v)
	logger.Info("Dashboard session created", "session_id", id)
	JSONResponse(w, http.StatusCreated, h.visitorView(id, v))
}

// GetSession handles GET /api/v1/dashboard/sessions/{id}
func (h *DashboardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	JSONResponse(w, http.StatusOK, h.visitorView(id, v))
}

// DeleteSession handles DELETE /api/v1/dashboard/sessions/{id}
func (h *DashboardHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.visitors.Remove(mux.Vars(r)["id"]) {
		ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) controller(w http.ResponseWriter, r *http.Request, v *visitor) (*intake.Controller, bool) {
	c, ok := v.dashboard.Controller(mux.Vars(r)["form"])
	if !ok {
		ErrorResponse(w, http.StatusNotFound, "Form not found")
		return nil, false
	}
	return c, true
}

// UpdateForm handles PATCH /api/v1/dashboard/sessions/{id}/forms/{form}
func (h *DashboardHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	_, v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	c, ok := h.controller(w, r, v)
	if !ok {
		return
	}

	var values map[string]string
	if err := parseJSONBody(r, &values); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	for name, value := range values {
		if err := c.SetField(name, value); err != nil {
			if errors.Is(err, intake.ErrBusy) {
				ErrorResponse(w, http.StatusConflict, "A submission is already in progress")
				return
			}
			ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	JSONResponse(w, http.StatusOK, formView(c))
}

// SubmitForm handles POST /api/v1/dashboard/sessions/{id}/forms/{form}/submit.
// Collaborator failures are part of the form state and answer 200.
func (h *DashboardHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	_, v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	c, ok := h.controller(w, r, v)
	if !ok {
		return
	}

	// A started submission runs to completion even if the client goes away
	ctx := context.WithoutCancel(r.Context())
	_, err := c.Submit(ctx)

	var verr *intake.ValidationError
	switch {
	case errors.Is(err, intake.ErrBusy):
		ErrorResponse(w, http.StatusConflict, "A submission is already in progress")
	case errors.As(err, &verr):
		JSONResponse(w, http.StatusUnprocessableEntity, SubmitResponse{FormView: formView(c), Errors: verr.Fields})
	default:
		JSONResponse(w, http.StatusOK, SubmitResponse{FormView: formView(c)})
	}
}

// SweepIdle drops visitors idle longer than timeout
func (h *DashboardHandler) SweepIdle(timeout time.Duration) int {
	return h.visitors.SweepIdle(timeout)
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api/v1/dashboard").Subrouter()
	s.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	s.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	s.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	s.HandleFunc("/sessions/{id}/forms/{form}", h.UpdateForm).Methods(http.MethodPatch)
	s.HandleFunc("/sessions/{id}/forms/{form}/submit", h.SubmitForm).Methods(http.MethodPost)
}
