package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/itroyan/staffdesk/internal/middleware"
	"github.com/itroyan/staffdesk/internal/models"
	"github.com/itroyan/staffdesk/internal/service"
)

// EmployeeService defines the operations required by the employee
// handlers.
type EmployeeService interface {
	// Profile returns the profile for an authenticated user id.
	Profile(ctx context.Context, userID int64) (*models.UserProfile, error)
	// ListEmployees returns everyone in the requester's organization.
	ListEmployees(ctx context.Context, requesterID int64) ([]models.UserProfile, error)
	// CreateEmployee creates an account in the requester's organization.
	CreateEmployee(ctx context.Context, requesterID int64, req models.CreateEmployeeRequest) (*models.UserProfile, error)
}

// EmployeeHandler handles the employee directory endpoints.
type EmployeeHandler struct {
	// Service performs the underlying employee operations.
	Service EmployeeService
}

// List handles GET /api/employees for any authenticated member of an
// organization.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserIDFromContext(r.Context())
	employees, err := h.Service.ListEmployees(r.Context(), requesterID)
	if errors.Is(err, service.ErrNoOrganization) {
		writeError(w, http.StatusForbidden, "complete onboarding first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// Create handles POST /api/employees. Only admin-capable roles (Owner,
// HR Admin, Manager) may create accounts.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserIDFromContext(r.Context())
	requester, err := h.Service.Profile(r.Context(), requesterID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown account")
		return
	}
	if !slices.Contains(models.AdminCapableRoles, requester.Role) {
		writeError(w, http.StatusForbidden, "insufficient role")
		return
	}

	var req models.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	profile, err := h.Service.CreateEmployee(r.Context(), requesterID, req)
	if errors.Is(err, service.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email is already registered")
		return
	}
	if errors.Is(err, service.ErrNoOrganization) {
		writeError(w, http.StatusForbidden, "complete onboarding first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}
