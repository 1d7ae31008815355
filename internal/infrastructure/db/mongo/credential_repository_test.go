package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logintest/login-api/internal/core/domain"
)

func setupRepo(t *testing.T) *CredentialRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{URI: uri, Database: "login_data_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := NewCredentialRepository(db, 0)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestCredentialRepository_Mongo(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Ping(ctx))

	cred := &domain.Credential{Email: "test@example.com", Password: "Password123!", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, cred))
	assert.ErrorIs(t, repo.Create(ctx, cred), domain.ErrUserExists)

	got, err := repo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Password123!", got.Password)
	assert.True(t, got.CreatedAt.Equal(now))

	_, err = repo.FindByEmail(ctx, "Test@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	exists, err := repo.Exists(ctx, "test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "test@example.com"))
	assert.ErrorIs(t, repo.Delete(ctx, "test@example.com"), domain.ErrUserNotFound)
}

func TestMillisToTime(t *testing.T) {
	assert.True(t, millisToTime(0).IsZero())
	assert.Equal(t, time.UnixMilli(1_700_000_000_123).UTC(), millisToTime(1_700_000_000_123))
}

func TestCredentialRepository_OperationTimeout(t *testing.T) {
	ctx := context.Background()
	// Connect does not dial; no server is needed to build the repository.
	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })
	db := client.Database("login_data_test")

	assert.Equal(t, defaultTimeout, NewCredentialRepository(db, 0).timeout)

	repo := NewCredentialRepository(db, 300*time.Millisecond)
	opCtx, cancel := repo.opContext(ctx)
	defer cancel()

	deadline, ok := opCtx.Deadline()
	require.True(t, ok, "operation context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(300*time.Millisecond), deadline, 100*time.Millisecond)

	start := time.Now()
	_, err = repo.FindByEmail(ctx, "test@example.com")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "lookup must give up at the store timeout")
}
