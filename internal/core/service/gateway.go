package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
	"github.com/logintest/login-api/internal/pkg/metrics"
)

var _ ports.CredentialGateway = (*CredentialGateway)(nil)

// CredentialGateway answers credential questions with plain booleans. Store
// errors are logged here and never propagated, so a failing store looks the
// same to callers as a bad credential.
type CredentialGateway struct {
	repo ports.CredentialRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewCredentialGateway wraps repo.
func NewCredentialGateway(repo ports.CredentialRepository, log zerolog.Logger) *CredentialGateway {
	return &CredentialGateway{
		repo: repo,
		log:  log.With().Str("component", "credential_gateway").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ValidateCredentials reports whether a record keyed by email exists and its
// password equals password exactly.
func (g *CredentialGateway) ValidateCredentials(ctx context.Context, email, password string) bool {
	start := time.Now()
	cred, err := g.repo.FindByEmail(ctx, email)
	observe("find", start, err)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			g.log.Error().Err(err).Str("email", email).Msg("credential lookup failed")
		}
		return false
	}
	return cred.Password == password
}

// UserExists reports whether a record keyed by email exists.
func (g *CredentialGateway) UserExists(ctx context.Context, email string) bool {
	start := time.Now()
	ok, err := g.repo.Exists(ctx, email)
	observe("exists", start, err)
	if err != nil {
		g.log.Error().Err(err).Str("email", email).Msg("existence check failed")
		return false
	}
	return ok
}

// AddUser inserts a new record. It returns false when the email is already
// taken or the store fails.
func (g *CredentialGateway) AddUser(ctx context.Context, email, password string) bool {
	now := g.now()
	start := time.Now()
	err := g.repo.Create(ctx, &domain.Credential{
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	})
	observe("create", start, err)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrUserExists):
		g.log.Warn().Str("email", email).Msg("insert rejected by unique email constraint")
	default:
		g.log.Error().Err(err).Str("email", email).Msg("insert credential failed")
	}
	return false
}

// RemoveUser deletes the record keyed by email. It returns false when no row
// matched or the store fails.
func (g *CredentialGateway) RemoveUser(ctx context.Context, email string) bool {
	start := time.Now()
	err := g.repo.Delete(ctx, email)
	observe("delete", start, err)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			g.log.Error().Err(err).Str("email", email).Msg("delete credential failed")
		}
		return false
	}
	return true
}

func observe(op string, start time.Time, err error) {
	metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrUserExists):
		result = "conflict"
	default:
		result = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(op, result).Inc()
}
