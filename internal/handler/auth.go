package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/carvalueai/carvalueai/internal/apierr"
	"github.com/carvalueai/carvalueai/internal/auth"
	"github.com/carvalueai/carvalueai/internal/handler/dto"
	"github.com/carvalueai/carvalueai/internal/service"
	"github.com/carvalueai/carvalueai/internal/token"
)

// AuthHandler handles registration, login, and the current-user lookup.
type AuthHandler struct {
	users  *service.UserService
	codec  *token.Codec
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, codec *token.Codec, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		codec:  codec,
		logger: logger,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Status:  "success",
		Message: "User registered successfully",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	tok, err := h.codec.Issue(user.ID)
	if err != nil {
		h.logger.Error("token_issue_failed", "error", err)
		apierr.WriteInternal(w, "")
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Status: "success",
		Token:  tok,
		User:   dto.ToUserResponse(user),
	})
}

// Me handles GET /auth/me. The auth gate has already verified the token
// and attached the claims; the subject is the user ID.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFromContext(r.Context())
	if subject == "" {
		apierr.Write(w, apierr.KindMissingToken, "No token provided")
		return
	}

	user, err := h.users.GetUser(r.Context(), subject)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{
		Status: "success",
		User:   dto.ToUserResponse(user),
	})
}

// handleUserError maps user service errors to envelopes.
func (h *AuthHandler) handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingUserName),
		errors.Is(err, service.ErrMissingEmail),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword):
		apierr.Write(w, apierr.KindValidationError, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		apierr.Write(w, apierr.KindValidationError, "Email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, apierr.Envelope{
			Status: "error",
			Error:  "Invalid email or password",
		})
	case errors.Is(err, service.ErrUserNotFound):
		apierr.Write(w, apierr.KindNotFound, "User not found")
	default:
		h.logger.Error("auth_internal_error", "error", err)
		apierr.WriteInternal(w, "")
	}
}
