// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"github.com/carvalueai/carvalueai/internal/model"
	"github.com/carvalueai/carvalueai/internal/service"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserResponse converts a user model to its public view.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	Status string       `json:"status"`
	User   UserResponse `json:"user"`
}

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
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

// ToCarDetails converts the request into the domain type.
func (r PredictRequest) ToCarDetails() model.CarDetails {
	return model.CarDetails{
		Name:         r.Name,
		Year:         r.Year,
		KmDriven:     r.KmDriven,
		Fuel:         r.Fuel,
		SellerType:   r.SellerType,
		Transmission: r.Transmission,
		Owner:        r.Owner,
		Mileage:      r.Mileage,
		Engine:       r.Engine,
		MaxPower:     r.MaxPower,
		Seats:        r.Seats,
	}
}

// PredictResponse is the body of a successful valuation.
type PredictResponse struct {
	Status         string `json:"status"`
	PredictedPrice int64  `json:"predicted_price"`
	CarID          string `json:"car_id"`
}

// CarResponse is the body of GET /cars/{car_id}.
type CarResponse struct {
	Status string     `json:"status"`
	Car    *model.Car `json:"car"`
}

// CreateOrderRequest is the body of POST /create-order.
// Amount is in paise; zero selects the default inspection fee.
type CreateOrderRequest struct {
	CarID         string `json:"car_id"`
	Amount        int64  `json:"amount"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateOrderResponse is the body of a successful order creation.
type CreateOrderResponse struct {
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// VerifyPaymentRequest is the body of POST /verify-payment.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyPaymentResponse is the body of a successful verification.
type VerifyPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BookInspectionRequest is the body of POST /book-inspection.
type BookInspectionRequest struct {
	CarID          string `json:"car_id"`
	OrderID        string `json:"order_id"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	Address        string `json:"address"`
	InspectionDate string `json:"inspection_date"`
	InspectionTime string `json:"inspection_time"`
}

// ToBookingInput converts the request into the service input.
func (r BookInspectionRequest) ToBookingInput() service.BookInspectionInput {
	return service.BookInspectionInput{
		CarID:          r.CarID,
		OrderID:        r.OrderID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		Address:        r.Address,
		InspectionDate: r.InspectionDate,
		InspectionTime: r.InspectionTime,
	}
}

// BookInspectionResponse is the body of a successful booking.
type BookInspectionResponse struct {
	Status    string `json:"status"`
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

// BookingResponse is the body of GET /bookings/{booking_id}.
type BookingResponse struct {
	Status  string         `json:"status"`
	Booking *model.Booking `json:"booking"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Status string         `json:"status"`
	Stats  *service.Stats `json:"stats"`
}
