package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itroyan/staffdesk/internal/client/session"
	"github.com/itroyan/staffdesk/internal/models"
)

func authedSnapshot(org *models.Organization) session.Snapshot {
	return session.Snapshot{
		Profile: &models.UserProfile{
			ID:           1,
			Name:         "Jane",
			Role:         models.RoleEmployee,
			Organization: org,
		},
		Authenticated: true,
	}
}

func TestEvaluate_LoadingBlocksEverything(t *testing.T) {
	// Loading wins even over an unauthenticated session: no redirect may
	// fire before the initial restoration completes.
	snap := session.Snapshot{Loading: true}
	assert.Equal(t, ShowLoading, Evaluate(snap, Options{}))
}

func TestEvaluate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	snap := session.Snapshot{}
	assert.Equal(t, RedirectToLogin, Evaluate(snap, Options{}))
}

func TestEvaluate_PendingOnboardingRedirects(t *testing.T) {
	snap := authedSnapshot(nil)
	assert.Equal(t, RedirectToOnboarding, Evaluate(snap, Options{}))
}

func TestEvaluate_SkipOnboardingCheck(t *testing.T) {
	snap := authedSnapshot(nil)
	assert.Equal(t, Render, Evaluate(snap, Options{SkipOnboardingCheck: true}))
}

func TestEvaluate_AuthorizedRenders(t *testing.T) {
	snap := authedSnapshot(&models.Organization{ID: 5, Name: "Acme"})
	assert.Equal(t, Render, Evaluate(snap, Options{}))
}

// recordingNavigator captures where Apply redirects.
type recordingNavigator struct {
	to []Route
}

func (n *recordingNavigator) Navigate(to Route) { n.to = append(n.to, to) }

func TestApply_NavigatesOnRedirectDecisions(t *testing.T) {
	nav := &recordingNavigator{}

	d := Apply(session.Snapshot{}, Options{}, nav)
	assert.Equal(t, RedirectToLogin, d)
	assert.Equal(t, []Route{RouteLogin}, nav.to)

	nav.to = nil
	d = Apply(authedSnapshot(nil), Options{}, nav)
	assert.Equal(t, RedirectToOnboarding, d)
	assert.Equal(t, []Route{RouteOnboarding}, nav.to)
}

func TestApply_NoNavigationWhileLoading(t *testing.T) {
	nav := &recordingNavigator{}
	Apply(session.Snapshot{Loading: true}, Options{}, nav)
	assert.Empty(t, nav.to)
}

func TestRoleGate_DeniesAndEchoesRequiredRoles(t *testing.T) {
	gate := RoleGate{Allowed: []models.Role{models.RoleOwner, models.RoleHRAdmin, models.RoleManager}}

	v := gate.Check(authedSnapshot(&models.Organization{ID: 5, Name: "Acme"}))
	assert.False(t, v.Allowed)
	assert.Equal(t, gate.Allowed, v.RequiredRoles)
	assert.Contains(t, v.Fallback(), "Owner, HR Admin, Manager")
}

func TestRoleGate_AllowsMatchingRole(t *testing.T) {
	snap := authedSnapshot(&models.Organization{ID: 5, Name: "Acme"})
	snap.Profile.Role = models.RoleHRAdmin

	v := RoleGate{Allowed: models.AdminCapableRoles}.Check(snap)
	assert.True(t, v.Allowed)
	assert.Empty(t, v.RequiredRoles)
}

func TestRoleGate_DeniesWhenUnauthenticated(t *testing.T) {
	snap := authedSnapshot(&models.Organization{ID: 5, Name: "Acme"})
	snap.Authenticated = false

	v := RoleGate{Allowed: []models.Role{models.RoleEmployee}}.Check(snap)
	assert.False(t, v.Allowed)
}
