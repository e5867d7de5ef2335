package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsEventRepo
type MockAnalyticsEventRepo struct {
	mock.Mock
}

func (m *MockAnalyticsEventRepo) Create(ctx context.Context, event *domain.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockAnalyticsEventRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestEmitter_NoSinks(t *testing.T) {
	e := NewEmitter()
	var got []string
	e.Subscribe(func(ev Event) { got = append(got, ev.Name) })

	assert.NotPanics(t, func() { e.Emit("cta_book_call_click") })
	assert.Equal(t, []string{"cta_book_call_click"}, got)
}

func TestEmitter_ForwardsToBothSinks(t *testing.T) {
	dl := NewDataLayer()
	var reported [][]any
	e := NewEmitter(WithQueue(dl), WithReporter(ReporterFunc(func(category string, args ...any) {
		reported = append(reported, append([]any{category}, args...))
	})))

	before := testutil.ToFloat64(metrics.AnalyticsEvents.WithLabelValues("scheduler_loaded"))
	e.Emit("scheduler_loaded")
	e.Emit("booking_confirmed")

	assert.Equal(t, []Record{{Event: "scheduler_loaded"}, {Event: "booking_confirmed"}}, dl.Records())
	assert.Equal(t, [][]any{{"event", "scheduler_loaded"}, {"event", "booking_confirmed"}}, reported)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AnalyticsEvents.WithLabelValues("scheduler_loaded")))
}

func TestEmitter_AttachAndUnsubscribe(t *testing.T) {
	e := NewEmitter()
	calls := 0
	unsubscribe := e.Subscribe(func(Event) { calls++ })

	e.Emit("a")
	unsubscribe()
	dl := NewDataLayer()
	e.Attach(dl, nil)
	e.Emit("b")

	assert.Equal(t, 1, calls)
	assert.Equal(t, []Record{{Event: "b"}}, dl.Records())
}

func TestStoreReporter(t *testing.T) {
	t.Run("Persists event", func(t *testing.T) {
		repo := new(MockAnalyticsEventRepo)
		repo.On("Create", mock.Anything, &domain.AnalyticsEvent{
			PageID:      "page-1",
			Category:    "event",
			Name:        "booking_confirmed",
			AnalyticsID: "clarity-1",
		}).Return(nil)

		NewStoreReporter(repo, "page-1", "clarity-1").Report("event", "booking_confirmed")
		repo.AssertExpectations(t)
	})

	t.Run("Swallows store errors", func(t *testing.T) {
		repo := new(MockAnalyticsEventRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		assert.NotPanics(t, func() {
			NewStoreReporter(repo, "page-1", "").Report("event", "scheduler_loaded")
		})
		repo.AssertExpectations(t)
	})

	t.Run("Ignores empty report", func(t *testing.T) {
		repo := new(MockAnalyticsEventRepo)
		NewStoreReporter(repo, "page-1", "").Report("event")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
