package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carvalueai/carvalueai/internal/auth"
	"github.com/carvalueai/carvalueai/internal/token"
)

func testAuthHandler(t *testing.T, codec *token.Codec) http.Handler {
	t.Helper()
	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Codec:  codec,
	}
	return Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFromContext(r.Context())
		if claims == nil {
			t.Error("claims missing from context behind auth gate")
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return body
}

func TestAuth_ValidToken(t *testing.T) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	handler := testAuthHandler(t, codec)

	tok, err := codec.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	handler := testAuthHandler(t, codec)

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if !strings.Contains(body["error"], "No token") {
		t.Errorf("error = %q, want it to mention the missing token", body["error"])
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	handler := testAuthHandler(t, codec)

	tests := []struct {
		name   string
		header string
	}{
		{"token without scheme", "some-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"too many segments", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/predict", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := token.NewCodec([]byte("test-secret"), time.Minute).
		WithClock(func() time.Time { return issued })

	tok, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	verifier := token.NewCodec([]byte("test-secret"), time.Minute)
	handler := testAuthHandler(t, verifier)

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if !strings.Contains(body["error"], "expired") {
		t.Errorf("error = %q, want it to mention expiry", body["error"])
	}
}

func TestAuth_InvalidSignature(t *testing.T) {
	issuer := token.NewCodec([]byte("other-secret"), time.Hour)
	tok, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	verifier := token.NewCodec([]byte("test-secret"), time.Hour)
	handler := testAuthHandler(t, verifier)

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if body["error"] != "Invalid token" {
		t.Errorf("error = %q, want \"Invalid token\"", body["error"])
	}
}
