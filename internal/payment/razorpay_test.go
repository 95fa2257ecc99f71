package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signFor(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	client := NewClient("rzp_test_key", "rzp_test_secret", "https://api.razorpay.com")

	sig := signFor("rzp_test_secret", "order_abc", "pay_xyz")
	if err := client.VerifySignature("order_abc", "pay_xyz", sig); err != nil {
		t.Fatalf("VerifySignature error: %v", err)
	}
}

func TestVerifySignature_Invalid(t *testing.T) {
	client := NewClient("rzp_test_key", "rzp_test_secret", "https://api.razorpay.com")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
	}{
		{"wrong signature", "order_abc", "pay_xyz", "deadbeef"},
		{"signature for other order", "order_abc", "pay_xyz", signFor("rzp_test_secret", "order_other", "pay_xyz")},
		{"signature with other secret", "order_abc", "pay_xyz", signFor("wrong-secret", "order_abc", "pay_xyz")},
		{"empty signature", "order_abc", "pay_xyz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.VerifySignature(tt.orderID, tt.paymentID, tt.signature)
			if !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("err = %v, want ErrInvalidSignature", err)
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("path = %s, want /v1/orders", r.URL.Path)
		}

		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			t.Error("expected basic auth with key id and secret")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["amount"] != float64(50000) {
			t.Errorf("amount = %v, want 50000", req["amount"])
		}
		if req["payment_capture"] != float64(1) {
			t.Errorf("payment_capture = %v, want 1", req["payment_capture"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_abc123",
			"amount":   50000,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer srv.Close()

	client := NewClient("rzp_test_key", "rzp_test_secret", srv.URL)

	order, err := client.CreateOrder(context.Background(), CreateOrderInput{
		Amount:   50000,
		Currency: "INR",
		Notes:    map[string]string{"car_id": "CAR_1"},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	if order.ID != "order_abc123" {
		t.Errorf("order ID = %q", order.ID)
	}
	if order.Currency != "INR" {
		t.Errorf("currency = %q", order.Currency)
	}
}

func TestCreateOrder_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("rzp_test_key", "rzp_test_secret", srv.URL)

	_, err := client.CreateOrder(context.Background(), CreateOrderInput{
		Amount:   50000,
		Currency: "INR",
	})
	if err == nil {
		t.Fatal("expected error for provider failure, got nil")
	}
}
