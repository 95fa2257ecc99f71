package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carvalueai/carvalueai/internal/apierr"
	"github.com/carvalueai/carvalueai/internal/handler/dto"
	"github.com/carvalueai/carvalueai/internal/service"
)

// BookingHandler handles inspection booking requests.
type BookingHandler struct {
	svc    *service.BookingService
	logger *slog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		svc:    svc,
		logger: logger,
	}
}

// BookInspection handles POST /book-inspection.
func (h *BookingHandler) BookInspection(w http.ResponseWriter, r *http.Request) {
	var req dto.BookInspectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.svc.BookInspection(r.Context(), req.ToBookingInput())
	if err != nil {
		// The booking may exist even when the status flip failed; report
		// success only when the whole transition went through.
		h.handleBookingError(w, err)
		return
	}

	h.logger.Info("inspection_booked",
		"booking_id", booking.BookingID,
		"car_id", booking.CarID,
	)

	writeJSON(w, http.StatusOK, dto.BookInspectionResponse{
		Status:    "success",
		BookingID: booking.BookingID,
		Message:   "Inspection booked successfully",
	})
}

// GetBooking handles GET /bookings/{booking_id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "booking_id")
	if bookingID == "" {
		apierr.Write(w, apierr.KindValidationError, "Booking ID is required")
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.handleBookingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BookingResponse{
		Status:  "success",
		Booking: booking,
	})
}

// handleBookingError maps booking service errors to envelopes.
func (h *BookingHandler) handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCustomerName),
		errors.Is(err, service.ErrMissingCustomerEmail),
		errors.Is(err, service.ErrInvalidCustomerEmail),
		errors.Is(err, service.ErrMissingInspectionDate):
		apierr.Write(w, apierr.KindValidationError, err.Error())
	case errors.Is(err, service.ErrCarNotFound):
		apierr.Write(w, apierr.KindNotFound, "Car not found")
	case errors.Is(err, service.ErrBookingNotFound):
		apierr.Write(w, apierr.KindNotFound, "Booking not found")
	default:
		h.logger.Error("booking_internal_error", "error", err)
		apierr.WriteInternal(w, "")
	}
}
