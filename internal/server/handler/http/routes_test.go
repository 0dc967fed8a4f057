package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/itroyan/staffdesk/internal/models"
	"github.com/itroyan/staffdesk/internal/repository"
	"github.com/itroyan/staffdesk/internal/server/token"
	"github.com/itroyan/staffdesk/internal/service"
)

// newTestServer boots the full router on a seeded in-memory repository.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens := token.NewManager("test-secret", time.Hour)
	svc := service.NewService(repository.NewMemory(), tokens)
	require.NoError(t, svc.SeedDemoAccounts(context.Background()))

	router := NewRouter(
		&AuthHandler{Service: svc},
		&OrgHandler{Service: svc},
		&EmployeeHandler{Service: svc},
		tokens,
		zap.NewNop(),
		rate.NewLimiter(rate.Inf, 1),
	)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server, email string) models.LoginResponse {
	t.Helper()
	body, _ := json.Marshal(models.LoginRequest{Email: email, Password: "password"})
	resp, err := http.Post(ts.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, tok string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRouter_LoginProfileRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	out := login(t, ts, "owner@staffdesk.local")
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, models.RoleOwner, out.User.Role)
	require.NotNil(t, out.User.Organization)

	resp := doJSON(t, ts, http.MethodGet, "/api/auth/profile", out.AccessToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.UserProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, out.User.ID, profile.ID)
}

func TestRouter_ProfileRejectsAnonymous(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/api/auth/profile", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_EmployeeCreateRequiresAdminCapableRole(t *testing.T) {
	ts := newTestServer(t)

	employee := login(t, ts, "employee@staffdesk.local")
	resp := doJSON(t, ts, http.MethodPost, "/api/employees", employee.AccessToken, models.CreateEmployeeRequest{
		Name: "X", Email: "x@x.com", Password: "pw",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	manager := login(t, ts, "manager@staffdesk.local")
	resp2 := doJSON(t, ts, http.MethodPost, "/api/employees", manager.AccessToken, models.CreateEmployeeRequest{
		Name: "X", Email: "x@x.com", Password: "pw", Role: models.RoleEmployee,
	})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusCreated, resp2.StatusCode)
}

func TestRouter_OnboardingFlow(t *testing.T) {
	ts := newTestServer(t)

	pending := login(t, ts, "newhire@staffdesk.local")
	assert.Nil(t, pending.User.Organization)

	// Employee endpoints are gated until onboarding completes.
	resp := doJSON(t, ts, http.MethodGet, "/api/employees", pending.AccessToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodPost, "/api/organizations", pending.AccessToken, models.CreateOrganizationRequest{
		Name: "Fresh Co",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The refreshed profile now carries the organization.
	resp = doJSON(t, ts, http.MethodGet, "/api/auth/profile", pending.AccessToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.UserProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	require.NotNil(t, profile.Organization)
	assert.Equal(t, "Fresh Co", profile.Organization.Name)
}

func TestRouter_LoginRateLimited(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	svc := service.NewService(repository.NewMemory(), tokens)
	require.NoError(t, svc.SeedDemoAccounts(context.Background()))

	router := NewRouter(
		&AuthHandler{Service: svc},
		&OrgHandler{Service: svc},
		&EmployeeHandler{Service: svc},
		tokens,
		zap.NewNop(),
		rate.NewLimiter(rate.Limit(0), 1), // one attempt, then throttled
	)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	body, _ := json.Marshal(models.LoginRequest{Email: "owner@staffdesk.local", Password: "password"})
	first, err := http.Post(ts.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Post(ts.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}
