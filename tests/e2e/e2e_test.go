//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type loginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	User   struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type predictResponse struct {
	Status         string `json:"status"`
	PredictedPrice int64  `json:"predicted_price"`
	CarID          string `json:"car_id"`
}

type bookingResponse struct {
	Status    string `json:"status"`
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("CARVALUE_BASE_URL", "http://localhost:8080")
	client := &http.Client{Timeout: 10 * time.Second}

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "e2e-test-password"

	// Register
	status, body := postJSON(t, client, baseURL+"/auth/register", "", map[string]string{
		"name":     "E2E Tester",
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", status, body)
	}

	// Login
	status, body = postJSON(t, client, baseURL+"/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login: status %d, body %s", status, body)
	}

	var login loginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login returned no token")
	}
	if login.User.Email != email {
		t.Fatalf("login user email = %q, want %q", login.User.Email, email)
	}

	// Requests without a token are rejected
	status, _ = getJSON(t, client, baseURL+"/stats", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /stats: status %d, want 401", status)
	}

	// Predict
	status, body = postJSON(t, client, baseURL+"/predict", login.Token, map[string]any{
		"name":         "Hyundai i20 Sportz",
		"year":         2019,
		"km_driven":    32000,
		"fuel":         "Petrol",
		"seller_type":  "Individual",
		"transmission": "Manual",
		"owner":        "First Owner",
		"mileage":      18.6,
		"engine":       1197,
		"max_power":    82,
		"seats":        5,
	})
	if status != http.StatusOK {
		t.Fatalf("predict: status %d, body %s", status, body)
	}

	var predict predictResponse
	if err := json.Unmarshal(body, &predict); err != nil {
		t.Fatalf("decode predict response: %v", err)
	}
	if predict.CarID == "" || predict.PredictedPrice <= 0 {
		t.Fatalf("predict returned car_id=%q price=%d", predict.CarID, predict.PredictedPrice)
	}

	// Book inspection
	status, body = postJSON(t, client, baseURL+"/book-inspection", login.Token, map[string]string{
		"car_id":          predict.CarID,
		"customer_name":   "E2E Tester",
		"customer_email":  email,
		"inspection_date": time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
	})
	if status != http.StatusOK {
		t.Fatalf("book-inspection: status %d, body %s", status, body)
	}

	var booking bookingResponse
	if err := json.Unmarshal(body, &booking); err != nil {
		t.Fatalf("decode booking response: %v", err)
	}
	if booking.BookingID == "" {
		t.Fatal("booking returned no booking_id")
	}

	// Fetch the booking back
	status, body = getJSON(t, client, baseURL+"/bookings/"+booking.BookingID, login.Token)
	if status != http.StatusOK {
		t.Fatalf("get booking: status %d, body %s", status, body)
	}

	// Stats reflect the run
	status, body = getJSON(t, client, baseURL+"/stats", login.Token)
	if status != http.StatusOK {
		t.Fatalf("stats: status %d, body %s", status, body)
	}

	var stats struct {
		Status string `json:"status"`
		Stats  struct {
			TotalPredictions int64 `json:"total_predictions"`
			TotalBookings    int64 `json:"total_bookings"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats response: %v", err)
	}
	if stats.Stats.TotalPredictions < 1 || stats.Stats.TotalBookings < 1 {
		t.Fatalf("stats did not reflect run: %+v", stats.Stats)
	}
}

func TestE2EPreflight(t *testing.T) {
	baseURL := envOrDefault("CARVALUE_BASE_URL", "http://localhost:8080")
	origin := os.Getenv("CARVALUE_ALLOWED_ORIGIN")
	if origin == "" {
		t.Skip("CARVALUE_ALLOWED_ORIGIN not set")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest(http.MethodOptions, baseURL+"/predict", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("preflight request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != origin {
		t.Errorf("Allow-Origin = %q, want %q", got, origin)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want %q", got, "true")
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any) (int, []byte) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	return resp.StatusCode, body
}

func getJSON(t *testing.T, client *http.Client, url, token string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	return resp.StatusCode, body
}
