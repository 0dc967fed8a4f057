// Package guard decides, for a requested view, whether to render it,
// redirect, or substitute an access-denied fallback. It composes the
// session snapshot with the onboarding gate and the role policy as an
// explicit state machine so the "never redirect while loading" rule is
// structural, not incidental.
package guard

import (
	"strings"

	"github.com/itroyan/staffdesk/internal/client/policy"
	"github.com/itroyan/staffdesk/internal/client/session"
	"github.com/itroyan/staffdesk/internal/models"
)

// Decision is the outcome of evaluating a protected view.
type Decision int

const (
	// ShowLoading blocks rendering while the initial restoration runs.
	// No navigation may happen in this state.
	ShowLoading Decision = iota
	// RedirectToLogin sends an unauthenticated visitor to sign-in.
	RedirectToLogin
	// RedirectToOnboarding sends a user without an organization to the
	// onboarding flow.
	RedirectToOnboarding
	// Render lets the protected view through.
	Render
)

// String names the decision for logs and tests.
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToOnboarding:
		return "redirect-to-onboarding"
	case Render:
		return "render"
	}
	return "unknown"
}

// Options tunes guard evaluation per view.
type Options struct {
	// SkipOnboardingCheck opts the view out of the onboarding redirect.
	// The onboarding view itself sets this, otherwise it would redirect
	// to itself forever.
	SkipOnboardingCheck bool
}

// Route is a navigation target the guard may redirect to.
type Route string

const (
	// RouteLogin is the sign-in view.
	RouteLogin Route = "/login"
	// RouteOnboarding is the organization-setup view.
	RouteOnboarding Route = "/onboarding"
)

// Navigator performs navigation side effects on behalf of the guard.
type Navigator interface {
	Navigate(to Route)
}

// Evaluate runs the transition rules in priority order: loading blocks
// everything, then authentication, then onboarding, then render.
func Evaluate(snap session.Snapshot, opts Options) Decision {
	if snap.Loading {
		return ShowLoading
	}
	if !snap.Authenticated {
		return RedirectToLogin
	}
	if !opts.SkipOnboardingCheck && policy.NeedsOnboarding(snap.Profile, snap.Authenticated) {
		return RedirectToOnboarding
	}
	return Render
}

// Apply evaluates the snapshot and triggers the matching navigation on nav.
// It returns the decision so the caller can render accordingly.
func Apply(snap session.Snapshot, opts Options, nav Navigator) Decision {
	d := Evaluate(snap, opts)
	switch d {
	case RedirectToLogin:
		nav.Navigate(RouteLogin)
	case RedirectToOnboarding:
		nav.Navigate(RouteOnboarding)
	}
	return d
}

// RoleGate wraps a subtree with a required-role set. Unlike the route
// guard it never navigates: a denied check substitutes a fallback in place.
type RoleGate struct {
	// Allowed is the set of roles permitted to see the subtree.
	Allowed []models.Role
}

// Verdict is the outcome of a role-gate check.
type Verdict struct {
	// Allowed is true when the subtree may render.
	Allowed bool
	// RequiredRoles echoes the gate's allowed set on denial.
	RequiredRoles []models.Role
}

// Check decides whether the current user may see the gated subtree.
func (g RoleGate) Check(snap session.Snapshot) Verdict {
	if policy.CanAccess(snap.Profile, snap.Authenticated, g.Allowed...) {
		return Verdict{Allowed: true}
	}
	return Verdict{Allowed: false, RequiredRoles: g.Allowed}
}

// Fallback is the default access-denied text listing the required roles.
func (v Verdict) Fallback() string {
	names := make([]string, len(v.RequiredRoles))
	for i, r := range v.RequiredRoles {
		names[i] = string(r)
	}
	return "Access denied. You don't have permission to access this area. Required roles: " +
		strings.Join(names, ", ")
}
