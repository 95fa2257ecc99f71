// Package middleware provides HTTP middleware for the CarValue API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/carvalueai/carvalueai/internal/apierr"
)

// Preflight response values. The API allows credentialed requests, so
// the allowed origin is always echoed explicitly, never "*".
const (
	preflightMethods = "GET, POST, PUT, DELETE, OPTIONS, PATCH"
	preflightHeaders = "Content-Type, Authorization, X-Requested-With"
	preflightMaxAge  = "86400" // 24 hours
)

// OriginDecision is the outcome of evaluating a request's Origin header.
type OriginDecision struct {
	// Origin is the received header value, possibly empty.
	Origin string
	// Allowed reports whether the request may proceed.
	Allowed bool
	// EchoOrigin is the value for Access-Control-Allow-Origin.
	// Empty when no CORS headers should be emitted.
	EchoOrigin string
}

// OriginPolicy evaluates request origins against a static allow-list.
// Origins are enumerated, not pattern-matched.
type OriginPolicy struct {
	allowed map[string]bool
}

// NewOriginPolicy builds a policy from the configured origin list.
func NewOriginPolicy(origins []string) *OriginPolicy {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[strings.ToLower(origin)] = true
	}
	return &OriginPolicy{allowed: allowed}
}

// Decide evaluates an Origin header value.
//
// An absent origin is allowed: non-browser clients (mobile apps, CLI
// tools) send no Origin header and are not subject to CORS. A present
// origin must be on the allow-list; the received value is echoed back
// exactly, since credentials rule out a wildcard.
func (p *OriginPolicy) Decide(origin string) OriginDecision {
	if origin == "" {
		return OriginDecision{Allowed: true}
	}

	if p.allowed[strings.ToLower(origin)] {
		return OriginDecision{Origin: origin, Allowed: true, EchoOrigin: origin}
	}

	return OriginDecision{Origin: origin, Allowed: false}
}

// CORS returns a middleware enforcing the origin policy and answering
// preflight requests. It must run before auth and routing: every
// OPTIONS request short-circuits here regardless of path, and a
// disallowed origin is rejected before any handler can see it.
func CORS(policy *OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Every branch depends on the Origin header, so shared
			// caches must key on it even for rejections and
			// same-origin responses.
			w.Header().Set("Vary", "Origin")

			decision := policy.Decide(r.Header.Get("Origin"))

			if !decision.Allowed {
				// No Access-Control-Allow-Origin echo on rejection.
				apierr.Write(w, apierr.KindOriginRejected, "Origin not allowed")
				return
			}

			if decision.EchoOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", decision.EchoOrigin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", preflightMethods)
				w.Header().Set("Access-Control-Allow-Headers", preflightHeaders)
				w.Header().Set("Access-Control-Max-Age", preflightMaxAge)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"status":"ok"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
