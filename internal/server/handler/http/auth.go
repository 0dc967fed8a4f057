package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/itroyan/staffdesk/internal/middleware"
	"github.com/itroyan/staffdesk/internal/models"
	"github.com/itroyan/staffdesk/internal/service"
)

// AuthService defines the operations required by the authentication
// handlers.
type AuthService interface {
	// Login verifies credentials and returns a bearer token plus profile.
	Login(ctx context.Context, email, password string) (string, *models.UserProfile, error)
	// Profile returns the profile for an authenticated user id.
	Profile(ctx context.Context, userID int64) (*models.UserProfile, error)
	// RegisterOwner creates an Owner account and its organization.
	RegisterOwner(ctx context.Context, req models.RegisterOwnerRequest) (*models.UserProfile, error)
}

// AuthHandler handles login, profile and owner-registration requests.
type AuthHandler struct {
	// Service performs the underlying authentication operations.
	Service AuthService
}

// Login handles POST /api/auth/login. On valid credentials it answers
// 200 with {access_token, user}; otherwise 401 with a message body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, profile, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: token, User: *profile})
}

// Profile handles GET /api/auth/profile for an authenticated request.
// It answers 200 with the user's profile, or 401 when the account behind
// the token no longer exists.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	profile, err := h.Service.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown account")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// RegisterOwner handles POST /api/auth/register-owner. It creates the
// owner account together with its organization and answers 201.
func (h *AuthHandler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.OrganizationName == "" {
		writeError(w, http.StatusBadRequest, "all registration fields are required")
		return
	}

	profile, err := h.Service.RegisterOwner(r.Context(), req)
	if errors.Is(err, service.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email is already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": profile})
}
