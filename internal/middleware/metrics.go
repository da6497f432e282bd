package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thingful/twirp-go/pkg/clock"
	"github.com/thingful/twirp-go/pkg/metrics"
)

// metricsMiddleware records request duration per status code, method and
// path. Duration is measured with a clock.Clock rather than a direct
// time.Now() call so it can be exercised with a clock.Mock in tests.
type metricsMiddleware struct {
	h        http.Handler
	duration *prometheus.HistogramVec
	clock    clock.Clock
}

// ServeHTTP implements http.Handler.
func (m *metricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := &captureWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
	start := m.clock.Now()
	m.h.ServeHTTP(cw, r)
	took := m.clock.Now().Sub(start)
	m.duration.WithLabelValues(
		strconv.Itoa(cw.statusCode), r.Method, r.URL.Path).
		Observe(took.Seconds())
}

// MetricsMiddleware returns middleware recording a request_duration_sec
// histogram under namespace/subsystem, timed using clk. Safe to install more
// than once per process; registration goes through metrics.MustRegister,
// which tolerates being called again for the same collector.
func MetricsMiddleware(namespace, subsystem string, clk clock.Clock) func(http.Handler) http.Handler {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_sec",
			Help:      "Time (in seconds) spent serving HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status_code", "method", "path"},
	)

	metrics.MustRegister(duration)

	return func(h http.Handler) http.Handler {
		return &metricsMiddleware{
			h:        h,
			duration: duration,
			clock:    clk,
		}
	}
}
