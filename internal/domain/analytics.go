package domain

import "time"

// Analytics event names emitted by the landing page
const (
	EventCTABookCallClick = "cta_book_call_click"
	EventSchedulerLoaded  = "scheduler_loaded"
	EventBookingConfirmed = "booking_confirmed"
)

// AnalyticsEvent is one reported analytics event persisted by the event store
type AnalyticsEvent struct {
	ID          int64     `json:"id"`
	PageID      string    `json:"page_id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	AnalyticsID string    `json:"analytics_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
