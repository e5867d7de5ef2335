// Package booking correlates scheduling widget messages with a one-way
// "booked" state on a landing page.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

type Classification int

const (
	Unrelated Classification = iota
	SchedulingRelated
	BookingConfirmed
)

func (c Classification) String() string {
	switch c {
	case SchedulingRelated:
		return "scheduling_related"
	case BookingConfirmed:
		return "booking_confirmed"
	default:
		return "unrelated"
	}
}

// SchedulingRelated reports whether the message came from the scheduling widget.
// Every BookingConfirmed message is also scheduling related.
func (c Classification) SchedulingRelated() bool {
	return c == SchedulingRelated || c == BookingConfirmed
}

const (
	schedulingMarker = "calendly"
	scheduledMarker  = "calendly.event_scheduled"
)

// Classify maps an untrusted message payload to a classification. String
// payloads are at most SchedulingRelated; only an object's event property
// can confirm a booking. Payloads of any other shape are Unrelated.
func Classify(payload any) Classification {
	switch p := payload.(type) {
	case string:
		if strings.Contains(p, schedulingMarker) {
			return SchedulingRelated
		}
	case map[string]any:
		ev, ok := p["event"]
		if !ok {
			return Unrelated
		}
		s := stringify(ev)
		if !strings.Contains(s, schedulingMarker) {
			return Unrelated
		}
		if strings.Contains(s, scheduledMarker) {
			return BookingConfirmed
		}
		return SchedulingRelated
	}
	return Unrelated
}

// stringify renders a decoded JSON value the way a browser's String() does
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return "[object Object]"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = stringify(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}
