package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carvalueai/carvalueai/internal/apierr"
	"github.com/carvalueai/carvalueai/internal/auth"
	"github.com/carvalueai/carvalueai/internal/token"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Codec  *token.Codec
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header, verifies
// it with the token codec, and injects the claims into the request
// context. The gate never consults storage: a verified token is trusted
// as-is for the lifetime of the request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				apierr.Write(w, apierr.KindMissingToken, "No token provided")
				return
			}

			// The header must split into exactly a scheme and a token.
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logAuthFailure(cfg.Logger, r, "malformed_auth_header")
				apierr.Write(w, apierr.KindMalformedAuthHeader, "Invalid authorization header format")
				return
			}

			claims, err := cfg.Codec.Verify(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					logAuthFailure(cfg.Logger, r, "expired_token")
					apierr.Write(w, apierr.KindExpiredToken, "Token expired. Please login again.")
					return
				}
				logAuthFailure(cfg.Logger, r, "invalid_token")
				apierr.Write(w, apierr.KindInvalidSignature, "Invalid token")
				return
			}

			cfg.Logger.Debug("authentication successful",
				slog.String("subject", claims.Subject),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}
