package session

import (
	"go.uber.org/zap"

	"github.com/itroyan/staffdesk/internal/client/policy"
	"github.com/itroyan/staffdesk/internal/models"
)

// HasRole reports whether the current user's role is in roles.
func (s *Store) HasRole(roles ...models.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return policy.HasRole(s.profile, roles...)
}

// CanAccess reports whether the current user is authenticated and holds
// one of the required roles.
func (s *Store) CanAccess(required ...models.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return policy.CanAccess(s.profile, s.authenticated, required...)
}

// CanSwitchViews reports whether the current user may toggle between the
// admin and employee views.
func (s *Store) CanSwitchViews() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return policy.CanSwitchViews(s.profile)
}

// NeedsOnboarding reports whether the current user still has no
// organization provisioned.
func (s *Store) NeedsOnboarding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return policy.NeedsOnboarding(s.profile, s.authenticated)
}

// SwitchToAdminView activates the admin view and persists the choice.
// It is a no-op for non-admin-capable users.
func (s *Store) SwitchToAdminView() {
	s.switchView(models.ViewAdmin)
}

// SwitchToEmployeeView activates the employee view and persists the choice.
// It is a no-op for non-admin-capable users.
func (s *Store) SwitchToEmployeeView() {
	s.switchView(models.ViewEmployee)
}

func (s *Store) switchView(mode models.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !policy.CanSwitchViews(s.profile) {
		return
	}
	s.viewMode = mode
	if err := s.state.SetViewMode(string(mode)); err != nil {
		s.log.Warn("persist view mode", zap.Error(err))
	}
}

// ViewMode returns the active view mode.
func (s *Store) ViewMode() models.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}
