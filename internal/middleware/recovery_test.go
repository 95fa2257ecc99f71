package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoverer_ConvertsPanicToEnvelope(t *testing.T) {
	cfg := RecovererConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := Recoverer(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}

	if body["status"] != "error" {
		t.Errorf("status field = %q, want error", body["status"])
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
	if _, present := body["details"]; present {
		t.Error("details must be absent when IncludeDetails is false")
	}
}

func TestRecoverer_IncludesDetailsInDevelopment(t *testing.T) {
	cfg := RecovererConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		IncludeDetails: true,
	}

	handler := Recoverer(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil pointer somewhere")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}

	if body["details"] != "nil pointer somewhere" {
		t.Errorf("details = %q, want panic value", body["details"])
	}
}

func TestRecoverer_PassesThroughWithoutPanic(t *testing.T) {
	cfg := RecovererConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := Recoverer(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want passthrough 418", rec.Code)
	}
}
