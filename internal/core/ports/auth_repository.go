package ports

import (
	"context"

	"github.com/logintest/login-api/internal/core/domain"
)

// CredentialRepository is the persistence port for credential records.
// Implementations translate driver errors into domain sentinels:
// ErrUserNotFound for missing keys and ErrUserExists for duplicate inserts.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, cred *domain.Credential) error
	Delete(ctx context.Context, email string) error
	// EnsureSchema creates the credential table (or index) when missing.
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
}

// CredentialGateway is the boolean facade the login flow talks to. Store
// failures are logged by the gateway and reported as false.
type CredentialGateway interface {
	ValidateCredentials(ctx context.Context, email, password string) bool
	UserExists(ctx context.Context, email string) bool
	AddUser(ctx context.Context, email, password string) bool
	RemoveUser(ctx context.Context, email string) bool
}
