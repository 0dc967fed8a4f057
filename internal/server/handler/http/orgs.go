package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itroyan/staffdesk/internal/middleware"
	"github.com/itroyan/staffdesk/internal/models"
)

// OrganizationService defines the operations required by the
// organization handler.
type OrganizationService interface {
	// CreateOrganization provisions an organization for the user and
	// links the user to it.
	CreateOrganization(ctx context.Context, userID int64, req models.CreateOrganizationRequest) (*models.Organization, error)
}

// OrgHandler handles the onboarding-completion endpoint.
type OrgHandler struct {
	// Service performs the underlying organization operations.
	Service OrganizationService
}

// Create handles POST /api/organizations. It provisions an organization
// for the authenticated user; the client is expected to refresh its
// profile afterwards, which clears the onboarding gate.
func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "organization name is required")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	org, err := h.Service.CreateOrganization(r.Context(), userID, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, org)
}
