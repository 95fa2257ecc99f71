// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/carvalueai/carvalueai/internal/apierr"
)

// Root is the service banner endpoint.
// GET /
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "CarValue API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cors":      "enabled",
	})
}

// NotFound handles requests for unknown routes. The envelope echoes the
// requested path so clients can tell a route typo from a missing entity.
func NotFound(w http.ResponseWriter, r *http.Request) {
	apierr.WriteNotFound(w, r.URL.Path)
}

// MethodNotAllowed handles requests with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apierr.Envelope{
		Status: "error",
		Error:  "method not allowed",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a request body into dst, translating failures into a
// validation envelope. Returns false when the response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierr.Write(w, apierr.KindValidationError, "Invalid request body")
		return false
	}
	return true
}
