// Package middleware provides HTTP middleware components.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// RequestIDContextKey is the context key for storing the unique request ID.
const RequestIDContextKey ContextKey = constants.RequestIDContextKey

// RequestID reuses the client's X-Request-ID or generates one, stores it in the
// request context and echoes it in the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" || len(requestID) > constants.MaxRequestIDLength {
				requestID = uuid.New().String()
				r.Header.Set(constants.HeaderXRequestID, requestID)
			}

			w.Header().Set(constants.HeaderXRequestID, requestID)
			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}
