package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/carvalueai/carvalueai/internal/apierr"
)

// RecovererConfig holds configuration for the panic recovery middleware.
type RecovererConfig struct {
	Logger *slog.Logger
	// IncludeDetails enables the details field in 500 envelopes.
	// Must stay false in production.
	IncludeDetails bool
}

// Recoverer is a middleware that recovers from panics.
// It logs the panic with its stack and returns a 500 error envelope.
// The client-facing message is always generic; the panic value is
// exposed in the details field only outside production.
func Recoverer(cfg RecovererConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					cfg.Logger.Error("panic recovered",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())),
					)

					details := ""
					if cfg.IncludeDetails {
						details = fmt.Sprintf("%v", rvr)
					}
					apierr.WriteInternal(w, details)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
