// Package main starts the StaffDesk development server: a local stand-in
// for the production backend that serves the authentication, onboarding
// and employee endpoints the client expects.
package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/itroyan/staffdesk/internal/db"
	"github.com/itroyan/staffdesk/internal/logger"
	"github.com/itroyan/staffdesk/internal/repository"
	"github.com/itroyan/staffdesk/internal/server/config"
	handler "github.com/itroyan/staffdesk/internal/server/handler/http"
	"github.com/itroyan/staffdesk/internal/server/token"
	"github.com/itroyan/staffdesk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	zapLogger := log.Log
	defer func() { _ = zapLogger.Sync() }()

	// Pick the repository: PostgreSQL when a DSN is configured,
	// seeded in-memory otherwise.
	var repo service.Directory
	if cfg.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(cfg.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		repo = repository.NewPostgres(postgresDB)
		zapLogger.Info("using postgres repository")
	} else {
		repo = repository.NewMemory()
		zapLogger.Info("using in-memory repository")
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := service.NewService(repo, tokens)

	if err := svc.SeedDemoAccounts(context.Background()); err != nil {
		zapLogger.Fatal("seed demo accounts", zap.Error(err))
	}

	authHandler := &handler.AuthHandler{Service: svc}
	orgHandler := &handler.OrgHandler{Service: svc}
	employeeHandler := &handler.EmployeeHandler{Service: svc}

	router := handler.NewRouter(
		authHandler,
		orgHandler,
		employeeHandler,
		tokens,
		zapLogger,
		rate.NewLimiter(rate.Limit(cfg.LoginRPS), cfg.LoginBurst),
	)

	zapLogger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
