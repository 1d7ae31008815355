package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logintest/login-api/internal/api"
	"github.com/logintest/login-api/internal/core/service"
	"github.com/logintest/login-api/internal/core/validation"
	"github.com/logintest/login-api/internal/infrastructure/db"
	"github.com/logintest/login-api/internal/pkg/config"
	"github.com/logintest/login-api/pkg/logger"
)

// @title        Login API
// @version      1.0
// @description  Email/password login and registration.
// @BasePath     /
func main() {
	ctx := context.Background()
	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "login-api",
	})

	rules, err := validation.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.RulesFile).Msg("load validation rules")
	}

	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open credential store")
	}

	gateway := service.NewCredentialGateway(store.Repo, log)
	if cfg.Seed.Email != "" {
		created, err := service.SeedUser(ctx, gateway, cfg.Seed.Email, cfg.Seed.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("seed user")
		}
		log.Info().Bool("created", created).Msg("seed user ensured")
	}

	e := api.NewRouter(api.Deps{
		AuthService: service.NewAuthService(gateway, validation.New(rules), log),
		Store:       store.Repo,
		StoreDriver: store.Driver,
		Log:         logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("login api listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close credential store")
	}
	log.Info().Msg("stopped")
}
