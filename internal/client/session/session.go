// Package session implements the client's single source of truth for "who
// is the current user and are they authenticated": credential restoration
// at startup, login, logout and profile refresh.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/itroyan/staffdesk/internal/client/api"
	"github.com/itroyan/staffdesk/internal/client/policy"
	"github.com/itroyan/staffdesk/internal/client/state"
	"github.com/itroyan/staffdesk/internal/models"
)

// Store holds the current session. It is constructed once at the
// composition root and passed to everything that needs it; all mutation
// goes through Restore, Login, Logout and RefreshUser. Guards and policy
// checks only read it.
type Store struct {
	api   *api.Client
	state *state.File
	log   *zap.Logger

	mu            sync.Mutex
	profile       *models.UserProfile
	authenticated bool
	loading       bool
	viewMode      models.ViewMode
	// epoch increments on every session-mutating call. A profile fetch
	// that completes under a stale epoch (a logout or login raced it)
	// is discarded instead of overwriting the newer state.
	epoch uint64
}

// Snapshot is an immutable view of the session for guards and rendering.
type Snapshot struct {
	// Profile is the authenticated user, or nil.
	Profile *models.UserProfile
	// Authenticated is true iff Profile is present.
	Authenticated bool
	// Loading is true during the initial silent restoration.
	Loading bool
	// ViewMode is the active dashboard variant.
	ViewMode models.ViewMode
}

// New constructs a Store. The store starts in the loading state; callers
// must run Restore once before making any redirect decision.
func New(client *api.Client, st *state.File, log *zap.Logger) *Store {
	return &Store{
		api:      client,
		state:    st,
		log:      log,
		loading:  true,
		viewMode: models.ViewAdmin,
	}
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Authenticated: s.authenticated,
		Loading:       s.loading,
		ViewMode:      s.viewMode,
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// Restore attempts the silent session restoration at process start. With no
// persisted credential it returns immediately without a network call. With
// one, it validates the credential against the profile endpoint; any failure
// discards the credential and degrades to the unauthenticated state. Restore
// never returns an error: every outcome is a definite session state.
func (s *Store) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.state.Token() == "" {
		s.mu.Lock()
		s.profile = nil
		s.authenticated = false
		s.mu.Unlock()
		return
	}
	s.fetchProfile(ctx)
}

// Login authenticates against the backend. On success it persists the
// credential, installs the profile and returns true. On any failure it
// returns false and leaves the prior session state untouched.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	res := api.Post[models.LoginResponse](ctx, s.api, "/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	})
	if !res.OK() || res.Data.AccessToken == "" {
		s.log.Info("login failed", zap.Int("status", res.Status), zap.String("reason", res.Err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.SetToken(res.Data.AccessToken); err != nil {
		s.log.Error("persist credential", zap.Error(err))
		return false
	}
	s.epoch++
	user := res.Data.User
	s.profile = &user
	s.authenticated = true
	s.loading = false
	s.initViewModeLocked()
	s.log.Info("logged in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return true
}

// Logout discards the credential and clears the session, then invokes the
// optional completion callback (typically a navigation trigger). It is
// idempotent: calling it while already logged out is a no-op plus callback.
func (s *Store) Logout(onComplete func()) {
	s.mu.Lock()
	s.epoch++
	if err := s.state.ClearToken(); err != nil {
		s.log.Warn("clear credential", zap.Error(err))
	}
	s.profile = nil
	s.authenticated = false
	s.loading = false
	s.mu.Unlock()

	s.log.Info("logged out")
	if onComplete != nil {
		onComplete()
	}
}

// RefreshUser re-fetches the profile with the persisted credential, for use
// after external state changes such as completing onboarding. It shares
// Restore's failure semantics but never touches the initial loading gate.
func (s *Store) RefreshUser(ctx context.Context) {
	s.fetchProfile(ctx)
}

// profileResult is the internal tagged outcome of a profile fetch. Only the
// collapsed authenticated/unauthenticated view leaves this package.
type profileResult struct {
	profile *models.UserProfile
	// reason describes the failure for logging when profile is nil.
	reason string
}

func (r profileResult) ok() bool { return r.profile != nil }

// fetchProfile validates the persisted credential and applies the outcome,
// unless a session-mutating call superseded this fetch in the meantime.
func (s *Store) fetchProfile(ctx context.Context) {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	res := s.validate(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.log.Debug("discarding stale profile fetch")
		return
	}
	if res.ok() {
		s.profile = res.profile
		s.authenticated = true
		s.initViewModeLocked()
		return
	}

	s.log.Info("session invalid", zap.String("reason", res.reason))
	if err := s.state.ClearToken(); err != nil {
		s.log.Warn("clear credential", zap.Error(err))
	}
	s.profile = nil
	s.authenticated = false
}

// validate fetches the profile with the current credential. Transport
// failures and rejected credentials are kept distinct here for logging but
// degrade identically.
func (s *Store) validate(ctx context.Context) profileResult {
	res := api.Get[models.UserProfile](ctx, s.api, "/auth/profile")
	if res.OK() {
		return profileResult{profile: res.Data}
	}
	return profileResult{reason: res.Err}
}

// initViewModeLocked applies the view-mode initialization policy after
// authentication becomes true. Callers must hold s.mu.
func (s *Store) initViewModeLocked() {
	saved := models.ViewMode(s.state.ViewMode())
	s.viewMode = policy.InitViewMode(s.profile.Role, saved)
}
