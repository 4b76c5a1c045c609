package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
	"github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/http/handlers"
)

type staticProgress struct{}

func (staticProgress) Progress() domain.Progress {
	return domain.Progress{Database: "ecommerce", Done: true, Completed: []domain.Step{}}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "router_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	deps := map[string]handlers.Pinger{
		"mongodb": handlers.PingFunc(func(context.Context) error { return nil }),
	}
	return NewRouter(staticProgress{}, deps, reg, zerolog.Nop())
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/health/ready", http.StatusOK, `"mongodb"`},
		{"/status", http.StatusOK, `"database":"ecommerce"`},
		{"/metrics", http.StatusOK, "router_test_total 1"},
		{"/nope", http.StatusNotFound, `"error"`},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tc.wantCode {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.wantCode, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.contains) {
			t.Errorf("%s: expected body to contain %q, got %s", tc.path, tc.contains, rec.Body.String())
		}
	}
}
