// Package http exposes the dashboard and landing surfaces over HTTP/JSON.
package http

import (
	"net/http"

	"cro-sprint-backend/internal/metrics"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Landing   *LandingHandler
}

func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()
	router.Use(WithLogging)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	h.Auth.RegisterRoutes(router)
	h.Dashboard.RegisterRoutes(router)
	h.Landing.RegisterRoutes(router)
	return router
}
