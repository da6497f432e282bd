package middleware

import "net/http"

// captureWriter wraps http.ResponseWriter to allow capturing and exposing
// the status code a handler wrote, for use by metricsMiddleware.
type captureWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code, then calls through.
func (cw *captureWriter) WriteHeader(statusCode int) {
	cw.statusCode = statusCode
	cw.ResponseWriter.WriteHeader(statusCode)
}
