// Package policy holds the pure access-decision functions: role membership
// checks, view-mode selection and the onboarding gate. Everything here is a
// function of its inputs only; the session store owns all state.
package policy

import (
	"slices"

	"github.com/itroyan/staffdesk/internal/models"
)

// HasRole reports whether the profile's role is a member of roles.
// It is false when there is no profile.
func HasRole(profile *models.UserProfile, roles ...models.Role) bool {
	if profile == nil {
		return false
	}
	return slices.Contains(roles, profile.Role)
}

// CanAccess reports whether an authenticated profile holds one of the
// required roles. Unlike HasRole it also requires the authenticated flag,
// so a profile lingering in memory after a sign-out never grants access.
func CanAccess(profile *models.UserProfile, authenticated bool, required ...models.Role) bool {
	if profile == nil || !authenticated {
		return false
	}
	return slices.Contains(required, profile.Role)
}

// CanSwitchViews reports whether the profile may toggle between the admin
// and employee views. Only Owner, HR Admin and Manager are admin-capable.
func CanSwitchViews(profile *models.UserProfile) bool {
	return HasRole(profile, models.AdminCapableRoles...)
}

// NeedsOnboarding reports whether the authenticated profile still lacks an
// organization. It is false, not true, when unauthenticated: an anonymous
// visitor is redirected to sign-in, never to onboarding.
func NeedsOnboarding(profile *models.UserProfile, authenticated bool) bool {
	if profile == nil || !authenticated {
		return false
	}
	return profile.Organization == nil || profile.Organization.ID == 0
}

// InitViewMode selects the view mode to apply when authentication becomes
// true. Non-admin-capable roles are pinned to the employee view regardless
// of any saved preference; admin-capable roles get their saved preference,
// defaulting to admin when it is absent or not exactly "employee".
func InitViewMode(role models.Role, saved models.ViewMode) models.ViewMode {
	if !slices.Contains(models.AdminCapableRoles, role) {
		return models.ViewEmployee
	}
	if saved == models.ViewEmployee {
		return models.ViewEmployee
	}
	return models.ViewAdmin
}
