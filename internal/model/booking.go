package model

import (
	"fmt"
	"time"
)

// BookingStatusConfirmed is the status assigned to a booking on creation.
const BookingStatusConfirmed = "confirmed"

// DefaultInspectionTime is used when the customer does not pick a slot.
const DefaultInspectionTime = "10:00 AM"

// Booking represents a scheduled vehicle inspection.
type Booking struct {
	ID             string    `json:"-"` // internal row id (ULID)
	BookingID      string    `json:"booking_id"`
	CarID          string    `json:"car_id"`
	OrderID        string    `json:"order_id,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  string    `json:"customer_phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	InspectionDate string    `json:"inspection_date"`
	InspectionTime string    `json:"inspection_time"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBookingID generates a booking identifier from a timestamp.
// Format: BOOK_<yyyymmddhhmmss><6-digit microseconds>.
func NewBookingID(t time.Time) string {
	return fmt.Sprintf("BOOK_%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000)
}
