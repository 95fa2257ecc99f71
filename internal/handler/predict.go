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

// ValuationHandler handles price prediction requests.
type ValuationHandler struct {
	svc    *service.ValuationService
	logger *slog.Logger
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(svc *service.ValuationService, logger *slog.Logger) *ValuationHandler {
	return &ValuationHandler{
		svc:    svc,
		logger: logger,
	}
}

// Predict handles POST /predict.
func (h *ValuationHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	car, err := h.svc.Value(r.Context(), req.ToCarDetails())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("car_valued",
		"car_id", car.CarID,
		"predicted_price", car.PredictedPrice,
	)

	writeJSON(w, http.StatusOK, dto.PredictResponse{
		Status:         "success",
		PredictedPrice: car.PredictedPrice,
		CarID:          car.CarID,
	})
}

// GetCar handles GET /cars/{car_id}.
func (h *ValuationHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "car_id")
	if carID == "" {
		apierr.Write(w, apierr.KindValidationError, "Car ID is required")
		return
	}

	car, err := h.svc.GetCar(r.Context(), carID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CarResponse{
		Status: "success",
		Car:    car,
	})
}

// handleServiceError maps valuation service errors to envelopes.
func (h *ValuationHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrMissingFuel),
		errors.Is(err, service.ErrMissingSellerType),
		errors.Is(err, service.ErrMissingTransmission),
		errors.Is(err, service.ErrMissingOwner),
		errors.Is(err, service.ErrInvalidYear),
		errors.Is(err, service.ErrInvalidOdometer),
		errors.Is(err, service.ErrInvalidMileage),
		errors.Is(err, service.ErrInvalidEngine),
		errors.Is(err, service.ErrInvalidPower),
		errors.Is(err, service.ErrInvalidSeats):
		apierr.Write(w, apierr.KindValidationError, err.Error())
	case errors.Is(err, service.ErrCarNotFound):
		apierr.Write(w, apierr.KindNotFound, "Car not found")
	default:
		h.logger.Error("valuation_internal_error", "error", err)
		apierr.WriteInternal(w, "")
	}
}
