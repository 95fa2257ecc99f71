package model

import "time"

// Payment status values.
const (
	PaymentStatusCreated  = "created"
	PaymentStatusVerified = "verified"
)

// DefaultOrderAmount is the inspection fee in paise when the request
// does not carry an amount.
const DefaultOrderAmount int64 = 50000

// DefaultCurrency is the only currency the provider account is set up for.
const DefaultCurrency = "INR"

// Payment represents a payment order and its verification state.
type Payment struct {
	OrderID       string     `json:"order_id"`
	CarID         string     `json:"car_id,omitempty"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	PaymentID     string     `json:"payment_id,omitempty"`
	Signature     string     `json:"-"` // Never serialize
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
