package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thingful/twirp-go/internal/middleware"
	"github.com/thingful/twirp-go/pkg/clock"
)

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	var seenInContext string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext, _ = r.Context().Value(middleware.RequestCtxKey).(string)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.RequestIDMiddleware(next).ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, rr.Header().Get(middleware.RequestIDHeader), seenInContext)
}

func TestRequestIDMiddlewarePreservesIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")

	middleware.RequestIDMiddleware(next).ServeHTTP(rr, req)

	assert.Equal(t, "fixed-id", rr.Header().Get(middleware.RequestIDHeader))
}

func TestMetricsMiddlewareAdvancesClock(t *testing.T) {
	mockClock := clock.NewMock(time.Unix(0, 0))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mockClock.Add(50 * time.Millisecond)
		w.WriteHeader(http.StatusTeapot)
	})

	mw := middleware.MetricsMiddleware("test", "metrics_mw", mockClock)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)

	mw(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
}
