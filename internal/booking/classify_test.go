package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    Classification
	}{
		{"nil", nil, Unrelated},
		{"empty string", "", Unrelated},
		{"plain string", "hello", Unrelated},
		{"string mentioning widget", "calendly stuff", SchedulingRelated},
		{"string never confirms", "calendly.event_scheduled", SchedulingRelated},
		{"object without event", map[string]any{"type": "calendly"}, Unrelated},
		{"object with foreign event", map[string]any{"event": "gtm.js"}, Unrelated},
		{"profile page viewed", map[string]any{"event": "calendly.profile_page_viewed"}, SchedulingRelated},
		{"event scheduled", map[string]any{"event": "calendly.event_scheduled"}, BookingConfirmed},
		{"event scheduled with payload", map[string]any{"event": "calendly.event_scheduled", "payload": map[string]any{}}, BookingConfirmed},
		{"null event", map[string]any{"event": nil}, Unrelated},
		{"numeric event", map[string]any{"event": 42.0}, Unrelated},
		{"nested object event", map[string]any{"event": map[string]any{"name": "calendly"}}, Unrelated},
		{"array event", map[string]any{"event": []any{"calendly", "event_scheduled"}}, SchedulingRelated},
		{"array joined", map[string]any{"event": []any{"calendly.event_scheduled"}}, BookingConfirmed},
		{"number payload", 3.0, Unrelated},
		{"bool payload", true, Unrelated},
		{"array payload", []any{"calendly"}, Unrelated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.payload)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Classify(tt.payload), "classification is deterministic")
		})
	}
}

func TestClassify_DecodedJSON(t *testing.T) {
	var payload any
	require.NoError(t, json.Unmarshal([]byte(`{"event":"calendly.event_scheduled","payload":{"invitee":{"uri":"x"}}}`), &payload))
	assert.Equal(t, BookingConfirmed, Classify(payload))
}

func TestClassification(t *testing.T) {
	assert.Equal(t, "unrelated", Unrelated.String())
	assert.Equal(t, "scheduling_related", SchedulingRelated.String())
	assert.Equal(t, "booking_confirmed", BookingConfirmed.String())

	assert.False(t, Unrelated.SchedulingRelated())
	assert.True(t, SchedulingRelated.SchedulingRelated())
	assert.True(t, BookingConfirmed.SchedulingRelated())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "null", stringify(nil))
	assert.Equal(t, "1.5", stringify(1.5))
	assert.Equal(t, "100", stringify(100.0))
	assert.Equal(t, "false", stringify(false))
	assert.Equal(t, "[object Object]", stringify(map[string]any{}))
	assert.Equal(t, "a,,b", stringify([]any{"a", nil, "b"}))
}
