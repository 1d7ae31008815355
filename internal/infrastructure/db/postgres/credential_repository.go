package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
)

const uniqueViolation = "23505"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS users (
	email      VARCHAR(255) PRIMARY KEY,
	password   VARCHAR(255) NOT NULL,
	created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

var _ ports.CredentialRepository = (*CredentialRepository)(nil)

// CredentialRepository stores credentials in the users table.
type CredentialRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewCredentialRepository(pool *pgxpool.Pool, timeout time.Duration) *CredentialRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CredentialRepository{pool: pool, timeout: timeout}
}

type pgCredential struct {
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var row pgCredential
	err := pgxscan.Get(ctx, r.pool, &row,
		`SELECT email, password, created_at, updated_at FROM users WHERE email = $1`, email)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	return &domain.Credential{
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

func (r *CredentialRepository) Exists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check credential: %w", err)
	}
	return exists, nil
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO users (email, password, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		cred.Email, cred.Password, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert credential: no rows affected")
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureSchema creates the users table when it does not exist.
func (r *CredentialRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	if _, err := r.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.pool.Ping(ctx)
}

func (r *CredentialRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}
