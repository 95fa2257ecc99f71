package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carvalueai/carvalueai/internal/model"
)

// ErrPaymentNotFound is returned when no payment matches the order ID.
var ErrPaymentNotFound = errors.New("payment not found")

// CreatePayment inserts a payment order record.
func (r *Repository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (
			order_id, car_id, amount, currency, status,
			customer_name, customer_email, customer_phone, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.OrderID,
		payment.CarID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CustomerName,
		payment.CustomerEmail,
		payment.CustomerPhone,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// MarkPaymentVerified records a successful signature verification
// against an existing order.
func (r *Repository) MarkPaymentVerified(ctx context.Context, orderID, paymentID, signature string, verifiedAt time.Time) error {
	query := `
		UPDATE payments
		SET payment_id = $2, signature = $3, status = $4, verified_at = $5
		WHERE order_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		orderID,
		paymentID,
		signature,
		model.PaymentStatusVerified,
		verifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payment verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// CountVerifiedPayments returns the number of verified payments.
func (r *Repository) CountVerifiedPayments(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM payments WHERE status = $1`
	if err := r.pool.QueryRow(ctx, query, model.PaymentStatusVerified).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count verified payments: %w", err)
	}
	return count, nil
}
