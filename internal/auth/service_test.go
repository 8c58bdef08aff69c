package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/sea-catering/backend/pkg/auth"
	"github.com/sea-catering/backend/pkg/config"
	"github.com/sea-catering/backend/pkg/db/models"
	"github.com/sea-catering/backend/pkg/enums"
	pkgerrors "github.com/sea-catering/backend/pkg/errors"
	"github.com/sea-catering/backend/pkg/security"
)

type stubUsersRepo struct {
	create      func(ctx context.Context, user *models.User) (*models.User, error)
	findByEmail func(ctx context.Context, email string) (*models.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return s.create(ctx, user)
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmail(ctx, email)
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findByID(ctx, id)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "sea-catering-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newAuthService(t *testing.T, repo *stubUsersRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestServiceRegisterNormalizesAndMintsToken(t *testing.T) {
	var created *models.User
	repo := &stubUsersRepo{
		create: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = uuid.New()
			created = user
			return user, nil
		},
	}
	svc := newAuthService(t, repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Budi Santoso  ",
		Email:    "  Budi@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "Budi Santoso", created.Name)
	assert.Equal(t, "budi@example.com", created.Email)
	assert.Equal(t, enums.UserRoleUser, created.Role)
	assert.NotEqual(t, "correct horse", created.PasswordHash)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleUser, claims.Role)
}

func TestServiceRegisterShortPassword(t *testing.T) {
	svc := newAuthService(t, &stubUsersRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &stubUsersRepo{
		create: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, &duplicateKeyError{}
		},
	}
	svc := newAuthService(t, repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

type duplicateKeyError struct{}

func (e *duplicateKeyError) Error() string {
	return `duplicate key value violates unique constraint "users_email_key"`
}

func TestServiceLoginValidCredentials(t *testing.T) {
	hash, err := security.HashPassword("correct horse", testPasswordConfig())
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Budi",
		Email:        "budi@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	}
	repo := &stubUsersRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			assert.Equal(t, "budi@example.com", email)
			return user, nil
		},
	}
	svc := newAuthService(t, repo)

	result, err := svc.Login(context.Background(), " Budi@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, claims.Role)
}

func TestServiceLoginWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("correct horse", testPasswordConfig())
	require.NoError(t, err)

	repo := &stubUsersRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: enums.UserRoleUser}, nil
		},
	}
	svc := newAuthService(t, repo)

	_, err = svc.Login(context.Background(), "budi@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestServiceLoginUnknownEmailIsUnauthorized(t *testing.T) {
	repo := &stubUsersRepo{
		findByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newAuthService(t, repo)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
