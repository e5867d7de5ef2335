package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router    *mux.Router
	auth      *MockAuthService
	store     *MockRecordStore
	events    *MockAnalyticsEventRepo
	dashboard *DashboardHandler
	landing   *LandingHandler
}

var testLanding = LandingConfig{
	CalendlyURL:     "https://calendly.com/acme/intro",
	WidgetScriptURL: "https://assets.calendly.com/assets/external/widget.js",
	ClarityID:       "clarity-1",
	DataLayer:       true,
}

func newTestServer(cfg LandingConfig) *testServer {
	ts := &testServer{
		auth:   new(MockAuthService),
		store:  new(MockRecordStore),
		events: new(MockAnalyticsEventRepo),
	}
	ts.dashboard = NewDashboardHandler(ts.auth, ts.store)
	ts.landing = NewLandingHandler(cfg, ts.events)
	ts.router = NewRouter(Handlers{
		Auth:      NewAuthHandler(ts.auth),
		Dashboard: ts.dashboard,
		Landing:   ts.landing,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rr.Code, rr.Body.String())
}
