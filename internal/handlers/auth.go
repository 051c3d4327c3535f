package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/azadstore/storefront/internal/platform/httpx"
	"github.com/azadstore/storefront/internal/services"
)

const maxAuthBodySize = 8 * 1024

// AuthHandlers exposes the admin login and credential rotation endpoints.
type AuthHandlers struct {
	auth services.AuthService
}

// NewAuthHandlers constructs a new AuthHandlers instance.
func NewAuthHandlers(auth services.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

// Routes registers the auth endpoints.
func (h *AuthHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/login", h.login)
	r.Post("/change-password", h.changePassword)
}

func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.auth == nil {
		httpx.WriteError(ctx, w, httpx.NewError("auth_service_unavailable", "auth service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxAuthBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	token, err := h.auth.Login(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_credentials", "invalid credentials", http.StatusUnauthorized))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("internal", "login failed", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (h *AuthHandlers) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.auth == nil {
		httpx.WriteError(ctx, w, httpx.NewError("auth_service_unavailable", "auth service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxAuthBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req changePasswordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	err = h.auth.ChangePassword(ctx, services.ChangePasswordCommand{
		OldPassword: req.OldPassword,
		NewUsername: strings.TrimSpace(req.NewUsername),
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_credentials", "incorrect old password", http.StatusUnauthorized))
		case errors.Is(err, services.ErrAuthInvalidInput):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "new username and password are required", http.StatusBadRequest))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to save credentials", http.StatusInternalServerError))
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"success": true, "message": "Credentials updated."})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewUsername string `json:"newUsername"`
	NewPassword string `json:"newPassword"`
}
