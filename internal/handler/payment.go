package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/carvalueai/carvalueai/internal/apierr"
	"github.com/carvalueai/carvalueai/internal/handler/dto"
	"github.com/carvalueai/carvalueai/internal/service"
)

// PaymentHandler handles payment order creation and verification.
type PaymentHandler struct {
	svc    *service.PaymentService
	logger *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		svc:    svc,
		logger: logger,
	}
}

// CreateOrder handles POST /create-order.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderInput{
		CarID:         req.CarID,
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		h.handlePaymentError(w, err)
		return
	}

	h.logger.Info("order_created",
		"order_id", order.OrderID,
		"amount", order.Amount,
	)

	writeJSON(w, http.StatusOK, dto.CreateOrderResponse{
		Status:   "success",
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    h.svc.KeyID(),
	})
}

// VerifyPayment handles POST /verify-payment.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.VerifyPayment(r.Context(), service.VerifyPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.handlePaymentError(w, err)
		return
	}

	h.logger.Info("payment_verified",
		"order_id", req.OrderID,
		"payment_id", req.PaymentID,
	)

	writeJSON(w, http.StatusOK, dto.VerifyPaymentResponse{
		Status:  "success",
		Message: "Payment verified successfully",
	})
}

// handlePaymentError maps payment service errors to envelopes.
func (h *PaymentHandler) handlePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrMissingOrderID),
		errors.Is(err, service.ErrMissingPaymentID),
		errors.Is(err, service.ErrMissingSignature):
		apierr.Write(w, apierr.KindValidationError, err.Error())
	case errors.Is(err, service.ErrSignatureMismatch):
		apierr.Write(w, apierr.KindValidationError, "Invalid signature")
	case errors.Is(err, service.ErrPaymentNotFound):
		apierr.Write(w, apierr.KindNotFound, "Payment order not found")
	default:
		h.logger.Error("payment_internal_error", "error", err)
		apierr.WriteInternal(w, "")
	}
}
