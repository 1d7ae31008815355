package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
	"github.com/logintest/login-api/internal/core/validation"
	"github.com/logintest/login-api/internal/pkg/metrics"
)

type authService struct {
	gateway   ports.CredentialGateway
	validator *validation.Validator
	log       zerolog.Logger
}

// NewAuthService returns an AuthService that validates input with v before
// any call reaches gateway.
func NewAuthService(gateway ports.CredentialGateway, v *validation.Validator, log zerolog.Logger) ports.AuthService {
	return &authService{
		gateway:   gateway,
		validator: v,
		log:       log.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks presence, then the validator on the raw values, then the
// store. Every rejection after the presence check is ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if err := requirePresent(email, password); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("missing_field").Inc()
		return nil, err
	}

	if o := s.validator.Check(email, password); !o.IsValid() {
		s.log.Debug().
			Str("field", string(o.Field)).
			Str("reason", string(o.Reason)).
			Msg("login input rejected")
		metrics.ValidationRejectionsTotal.WithLabelValues(string(o.Field), string(o.Reason)).Inc()
		metrics.LoginAttemptsTotal.WithLabelValues("rejected_input").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.gateway.ValidateCredentials(ctx, strings.TrimSpace(email), strings.TrimSpace(password)) {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return domain.Succeeded(domain.MsgLoginSuccessful), nil
}

// Register checks presence, then existence, then inserts. Values are stored
// as submitted.
func (s *authService) Register(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if err := requirePresent(email, password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("missing_field").Inc()
		return nil, err
	}

	if s.gateway.UserExists(ctx, email) {
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return nil, domain.ErrUserExists
	}

	if !s.gateway.AddUser(ctx, email, password) {
		metrics.RegistrationsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrRegistrationFailed
	}

	s.log.Info().Msg("user registered")
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return domain.Succeeded(domain.MsgRegistrationSuccessful), nil
}

// SeedUser registers email/password unless a record already exists. It
// reports whether a record was created.
func SeedUser(ctx context.Context, gateway ports.CredentialGateway, email, password string) (bool, error) {
	if err := requirePresent(email, password); err != nil {
		return false, err
	}
	if gateway.UserExists(ctx, email) {
		return false, nil
	}
	if !gateway.AddUser(ctx, email, password) {
		return false, domain.ErrRegistrationFailed
	}
	return true, nil
}

func requirePresent(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return domain.ErrEmailRequired
	}
	if strings.TrimSpace(password) == "" {
		return domain.ErrPasswordRequired
	}
	return nil
}
