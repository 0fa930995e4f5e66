package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// http.ErrAbortHandler is the server's own way to abort a response
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					requestID, _ := GetRequestID(r)
					appErr := utils.NewInternalServerError(fmt.Errorf("panic: %v", rec))

					log.Error().
						Str(constants.RequestIDContextKey, requestID).
						Str("error", appErr.DevInfo).
						Str("stack", string(debug.Stack())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("Panic recovered in request handler")

					utils.ErrorFromAppError(w, appErr, true)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
