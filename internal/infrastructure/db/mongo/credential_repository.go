package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/core/ports"
)

const credentialCollection = "users"

var _ ports.CredentialRepository = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db      *mongo.Database
	coll    *mongo.Collection
	timeout time.Duration
}

// NewCredentialRepository bounds every operation by timeout, or by
// defaultTimeout when timeout is not positive.
func NewCredentialRepository(db *mongo.Database, timeout time.Duration) *CredentialRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CredentialRepository{db: db, coll: db.Collection(credentialCollection), timeout: timeout}
}

func (r *CredentialRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type mongoCredential struct {
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	doc := mongoCredential{
		Email:     cred.Email,
		Password:  cred.Password,
		CreatedAt: cred.CreatedAt.UnixMilli(),
		UpdatedAt: cred.UpdatedAt.UnixMilli(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var mc mongoCredential
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	return &domain.Credential{
		Email:     mc.Email,
		Password:  mc.Password,
		CreatedAt: millisToTime(mc.CreatedAt),
		UpdatedAt: millisToTime(mc.UpdatedAt),
	}, nil
}

func (r *CredentialRepository) Exists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count credentials: %w", err)
	}
	return n > 0, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureSchema creates the unique index on email that backs duplicate
// detection in Create.
func (r *CredentialRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.db.Client().Ping(ctx, nil)
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
