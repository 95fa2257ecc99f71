package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carvalueai/carvalueai/internal/metrics"
	"github.com/carvalueai/carvalueai/internal/model"
	"github.com/carvalueai/carvalueai/internal/payment"
	"github.com/carvalueai/carvalueai/internal/repository"
)

// Payment errors.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrPaymentNotFound   = errors.New("payment order not found")
	ErrSignatureMismatch = errors.New("payment signature verification failed")
	ErrMissingOrderID    = errors.New("razorpay_order_id is required")
	ErrMissingPaymentID  = errors.New("razorpay_payment_id is required")
	ErrMissingSignature  = errors.New("razorpay_signature is required")
)

// OrderProvider abstracts the payment gateway for order creation and
// signature verification.
type OrderProvider interface {
	CreateOrder(ctx context.Context, input payment.CreateOrderInput) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

// PaymentService creates payment orders and verifies payments.
type PaymentService struct {
	repo     *repository.Repository
	provider OrderProvider
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo *repository.Repository, provider OrderProvider, recorder metrics.Recorder) *PaymentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PaymentService{
		repo:     repo,
		provider: provider,
		metrics:  recorder,
		now:      time.Now,
	}
}

// KeyID exposes the gateway's public key for checkout widgets.
func (s *PaymentService) KeyID() string {
	return s.provider.KeyID()
}

// CreateOrderInput carries the order request. Amount is in paise; zero
// means the default inspection fee.
type CreateOrderInput struct {
	CarID         string
	Amount        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// CreateOrder creates a gateway order and records it locally.
func (s *PaymentService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Payment, error) {
	amount := input.Amount
	if amount == 0 {
		amount = model.DefaultOrderAmount
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	notes := map[string]string{}
	if input.CarID != "" {
		notes["car_id"] = input.CarID
	}

	order, err := s.provider.CreateOrder(ctx, payment.CreateOrderInput{
		Amount:   amount,
		Currency: model.DefaultCurrency,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	record := &model.Payment{
		OrderID:       order.ID,
		CarID:         input.CarID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		Status:        model.PaymentStatusCreated,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.CreatePayment(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record payment order: %w", err)
	}

	s.metrics.IncOrderCreated()

	return record, nil
}

// VerifyPaymentInput carries the gateway callback fields.
type VerifyPaymentInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPayment checks the gateway signature and marks the order verified.
func (s *PaymentService) VerifyPayment(ctx context.Context, input VerifyPaymentInput) error {
	switch {
	case input.OrderID == "":
		return ErrMissingOrderID
	case input.PaymentID == "":
		return ErrMissingPaymentID
	case input.Signature == "":
		return ErrMissingSignature
	}

	if err := s.provider.VerifySignature(input.OrderID, input.PaymentID, input.Signature); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return ErrSignatureMismatch
		}
		return err
	}

	verifiedAt := s.now().UTC()
	if err := s.repo.MarkPaymentVerified(ctx, input.OrderID, input.PaymentID, input.Signature, verifiedAt); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to mark payment verified: %w", err)
	}

	s.metrics.IncPaymentVerified()

	return nil
}
