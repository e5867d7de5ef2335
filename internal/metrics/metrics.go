// Package metrics holds the Prometheus collectors for the dashboard and
// landing surfaces.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cro"

// Submission outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
	OutcomeBusy    = "busy"
)

var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	FormSubmissions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_submissions_total",
		Help:      "Dashboard form submissions by form and outcome.",
	}, []string{"form", "outcome"})

	SubmissionDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "form_submission_duration_seconds",
		Help:      "Time spent waiting on collaborators per submission.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"form"})

	AnalyticsEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_events_total",
		Help:      "Analytics events emitted by landing pages.",
	}, []string{"event"})

	BookingMessages = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_messages_total",
		Help:      "Inbound cross-window messages by classification.",
	}, []string{"classification"})

	ActiveSessions = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "In-memory dashboard visitor and landing page sessions.",
	}, []string{"surface"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
