package model

import (
	"fmt"
	"time"
)

// Car status values. A car starts as "predicted" and moves to
// "inspection_booked" once an inspection is scheduled against it.
const (
	CarStatusPredicted        = "predicted"
	CarStatusInspectionBooked = "inspection_booked"
)

// CarDetails holds the vehicle attributes submitted for valuation.
type CarDetails struct {
	Name         string  `json:"name"`
	Year         int     `json:"year"`
	KmDriven     int64   `json:"km_driven"`
	Fuel         string  `json:"fuel"`
	SellerType   string  `json:"seller_type"`
	Transmission string  `json:"transmission"`
	Owner        string  `json:"owner"`
	Mileage      float64 `json:"mileage"`
	Engine       float64 `json:"engine"`
	MaxPower     float64 `json:"max_power"`
	Seats        int     `json:"seats"`
}

// Car represents a valued vehicle record.
type Car struct {
	CarID          string     `json:"car_id"`
	Details        CarDetails `json:"details"`
	PredictedPrice int64      `json:"predicted_price"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewCarID generates a car identifier from a timestamp.
// Format: CAR_<yyyymmddhhmmss><6-digit microseconds>.
func NewCarID(t time.Time) string {
	return fmt.Sprintf("CAR_%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000)
}
