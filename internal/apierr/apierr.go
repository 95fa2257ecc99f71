// Package apierr defines the API failure taxonomy and the uniform JSON
// error envelope. Every non-2xx response the service emits goes through
// this package so the wire shape stays identical across failure paths.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind identifies a failure category. The set is closed: handlers and
// middleware map every failure onto exactly one of these before it
// reaches the client.
type Kind int

const (
	// KindMissingToken means no Authorization header was supplied.
	KindMissingToken Kind = iota
	// KindMalformedAuthHeader means the Authorization header did not
	// split into exactly a scheme and a token.
	KindMalformedAuthHeader
	// KindExpiredToken means the token's validity window has passed.
	KindExpiredToken
	// KindInvalidSignature means the token failed signature or
	// structural validation.
	KindInvalidSignature
	// KindOriginRejected means the request origin is not allow-listed.
	KindOriginRejected
	// KindValidationError means the request body failed validation.
	KindValidationError
	// KindNotFound means no route or entity matched the request.
	KindNotFound
	// KindUnhandled is any failure the other kinds do not cover.
	KindUnhandled
)

// HTTPStatus maps a Kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindMissingToken, KindMalformedAuthHeader, KindExpiredToken:
		return http.StatusUnauthorized
	case KindInvalidSignature, KindOriginRejected:
		return http.StatusForbidden
	case KindValidationError:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindMissingToken:
		return "missing_token"
	case KindMalformedAuthHeader:
		return "malformed_auth_header"
	case KindExpiredToken:
		return "expired_token"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindOriginRejected:
		return "origin_rejected"
	case KindValidationError:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	default:
		return "unhandled"
	}
}

// Error is a classified API failure. It carries the client-facing
// message separately from the wrapped internal cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// New creates a classified error with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around an internal cause.
// The cause is never serialized to the client.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Envelope is the uniform JSON error response body.
// Status is always the literal string "error".
type Envelope struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
	Details string `json:"details,omitempty"`
}

// Write emits the envelope for a classified failure.
func Write(w http.ResponseWriter, kind Kind, message string) {
	writeEnvelope(w, kind.HTTPStatus(), Envelope{Status: "error", Error: message})
}

// WriteNotFound emits a 404 envelope carrying the requested path.
func WriteNotFound(w http.ResponseWriter, path string) {
	writeEnvelope(w, http.StatusNotFound, Envelope{
		Status: "error",
		Error:  "resource not found",
		Path:   path,
	})
}

// WriteInternal emits a 500 envelope. The details string is included
// only when non-empty; callers pass it only outside production.
func WriteInternal(w http.ResponseWriter, details string) {
	writeEnvelope(w, http.StatusInternalServerError, Envelope{
		Status:  "error",
		Error:   "Internal server error",
		Details: details,
	})
}

// WriteError translates any error into an envelope. Classified errors
// keep their kind and message; everything else becomes a 500.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		Write(w, apiErr.Kind, apiErr.Message)
		return
	}
	WriteInternal(w, "")
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
