package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS users (
	email      TEXT    NOT NULL PRIMARY KEY,
	password   TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

var _ ports.CredentialRepository = (*CredentialRepository)(nil)

const defaultTimeout = 5 * time.Second

// CredentialRepository stores credentials in a local SQLite users table.
// Timestamps are kept as unix milliseconds.
type CredentialRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewCredentialRepository bounds every operation by timeout, or by a
// default when timeout is not positive.
func NewCredentialRepository(db *sql.DB, timeout time.Duration) *CredentialRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CredentialRepository{db: db, timeout: timeout}
}

func (r *CredentialRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var (
		cred             domain.Credential
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT email, password, created_at, updated_at FROM users WHERE email = ?`, email,
	).Scan(&cred.Email, &cred.Password, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	cred.CreatedAt = time.UnixMilli(created).UTC()
	cred.UpdatedAt = time.UnixMilli(updated).UTC()
	return &cred, nil
}

func (r *CredentialRepository) Exists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check credential: %w", err)
	}
	return exists, nil
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		cred.Email, cred.Password, cred.CreatedAt.UnixMilli(), cred.UpdatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("insert credential: no rows affected")
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *CredentialRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var sErr *sqlite.Error
	if !errors.As(err, &sErr) {
		return false
	}
	code := sErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
