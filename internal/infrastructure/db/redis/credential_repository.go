package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
)

const DefaultKeyPrefix = "credential:"

// createScript inserts the credential hash only when the key is absent.
// Returns 1 on insert and 0 when the key already exists.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "email", ARGV[1], "password", ARGV[2], "created_at", ARGV[3], "updated_at", ARGV[4])
return 1
`)

var _ ports.CredentialRepository = (*CredentialRepository)(nil)

// CredentialRepository keeps one hash per credential.
// Key format: <prefix><email>
type CredentialRepository struct {
	client *redis.Client
	prefix string
}

func NewCredentialRepository(client *redis.Client, prefix string) *CredentialRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &CredentialRepository{client: client, prefix: prefix}
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	fields, err := r.client.HGetAll(ctx, r.key(email)).Result()
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrUserNotFound
	}

	return &domain.Credential{
		Email:     fields["email"],
		Password:  fields["password"],
		CreatedAt: parseMillis(fields["created_at"]),
		UpdatedAt: parseMillis(fields["updated_at"]),
	}, nil
}

func (r *CredentialRepository) Exists(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("check credential: %w", err)
	}
	return n > 0, nil
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	inserted, err := createScript.Run(ctx, r.client, []string{r.key(cred.Email)},
		cred.Email,
		cred.Password,
		strconv.FormatInt(cred.CreatedAt.UnixMilli(), 10),
		strconv.FormatInt(cred.UpdatedAt.UnixMilli(), 10),
	).Int()
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	if inserted == 0 {
		return domain.ErrUserExists
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	n, err := r.client.Del(ctx, r.key(email)).Result()
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureSchema is a no-op; hashes need no schema. It still verifies that
// the server is reachable.
func (r *CredentialRepository) EnsureSchema(ctx context.Context) error {
	if err := r.Ping(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		if errors.Is(err, redis.ErrClosed) {
			return fmt.Errorf("redis client closed: %w", err)
		}
		return err
	}
	return nil
}

func (r *CredentialRepository) key(email string) string {
	return r.prefix + email
}

func parseMillis(raw string) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
