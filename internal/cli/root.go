// Package cli implements loginctl, the operator tool for the credential store.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/logintest/login-api/internal/core/service"
	"github.com/logintest/login-api/internal/infrastructure/db"
	"github.com/logintest/login-api/internal/pkg/config"
	"github.com/logintest/login-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "loginctl",
	Short:         "Manage the login API credential store",
	Long:          `Bootstrap and edit the credential store used by the login API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// session is everything a command needs to talk to the store.
type session struct {
	cfg     *config.Config
	store   *db.Store
	gateway *service.CredentialGateway
	log     zerolog.Logger
}

func (s *session) Close() {
	_ = s.store.Close(context.Background())
}

// openSession loads configuration and connects to the configured store.
// Tests replace it to run commands against an in-memory store.
var openSession = func(ctx context.Context) (*session, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "loginctl",
	})

	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	return &session{
		cfg:     cfg,
		store:   store,
		gateway: service.NewCredentialGateway(store.Repo, log),
		log:     log,
	}, nil
}

// Execute runs the root command with ctx available to every subcommand.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
