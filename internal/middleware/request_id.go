package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDHeader is the header a request ID is read from and echoed on.
	RequestIDHeader = "X-Request-ID"

	// RequestCtxKey is the context key under which the request ID is stored.
	RequestCtxKey = contextKey("requestID")
)

// RequestIDMiddleware adds a unique request ID to every request: the
// incoming X-Request-ID header if present, otherwise a freshly generated
// UUID. The ID is echoed back on the response and made available to
// downstream handlers via the request's context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, rid)
		ctx := context.WithValue(r.Context(), RequestCtxKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
