package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	registry "github.com/thingful/retryable-registry-prometheus"
)

// MustRegister registers c with the default Prometheus registerer, tolerating
// the case where it has already been registered. This matters because of the
// backoff retry loop at server startup (pkg/tasks): NewServer may run more
// than once before Start succeeds, and collectors it registers on each call,
// like the request-duration histogram from internal/middleware, must not
// panic on the second attempt.
func MustRegister(c prometheus.Collector) {
	registry.MustRegister(c)
}
