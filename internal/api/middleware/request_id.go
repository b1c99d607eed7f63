// Package middleware provides HTTP middleware for the EcoRoute API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey is the context key for the request ID.
type requestIDKey struct{}

// maxInboundIDLength caps client-supplied request IDs; anything longer
// is discarded and replaced.
const maxInboundIDLength = 64

// RequestID propagates the client's X-Request-Id or generates a fresh
// one, storing it in the context and echoing it in the response header.
// Oversized inbound IDs are replaced rather than truncated, so an ID
// either round-trips intact or not at all.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = "req_" + uuid.NewString()
		}

		w.Header().Set("X-Request-Id", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
