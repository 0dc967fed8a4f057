package http

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/itroyan/staffdesk/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the StaffDesk API.
//
// Routes (all under /api):
//
//	POST /api/auth/login          → authHandler.Login (rate limited)
//	POST /api/auth/register-owner → authHandler.RegisterOwner
//	GET  /api/auth/profile        → authHandler.Profile (bearer auth)
//	POST /api/organizations       → orgHandler.Create (bearer auth)
//	GET  /api/employees           → employeeHandler.List (bearer auth)
//	POST /api/employees           → employeeHandler.Create (bearer auth)
func NewRouter(
	authHandler *AuthHandler,
	orgHandler *OrgHandler,
	employeeHandler *EmployeeHandler,
	tokens middleware.TokenVerifier,
	logger *zap.Logger,
	loginLimiter *rate.Limiter,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", withRateLimit(loginLimiter, authHandler.Login))
		r.Post("/auth/register-owner", authHandler.RegisterOwner)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(tokens))
			r.Get("/auth/profile", authHandler.Profile)
			r.Post("/organizations", orgHandler.Create)
			r.Get("/employees", employeeHandler.List)
			r.Post("/employees", employeeHandler.Create)
		})
	})

	return r
}

// withRateLimit rejects requests beyond the limiter's budget with 429,
// throttling password guessing on the login endpoint.
func withRateLimit(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}
		next(w, r)
	}
}
