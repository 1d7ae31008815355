package ports

import (
	"context"

	"github.com/logintest/login-api/internal/core/domain"
)

// AuthService runs the login and registration flows. Failures are returned as
// domain sentinel errors.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, email, password string) (*domain.LoginResult, error)
}
