package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/models"
	"github.com/pulsedash/pulsedash/internal/tokens"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret-32-bytes-xxxxxx"
	cfg.JWT.SessionTTL = 24 * time.Hour
	return cfg
}

func TestSignup_DuplicateEmailKeepsOneRecord(t *testing.T) {
	repo := users.NewMemoryRepo()
	svc := NewService(testConfig(), repo)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jane Doe", "jane@example.com", "hunter22"))
	err := svc.Signup(ctx, "Jane Again", "jane@example.com", "hunter22")
	require.ErrorIs(t, err, users.ErrDuplicateEmail)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSignup_AppliesDefaults(t *testing.T) {
	repo := users.NewMemoryRepo()
	svc := NewService(testConfig(), repo)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jane Doe", "jane@example.com", "hunter22"))
	rec, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, rec.Role)
	require.Equal(t, models.TypeUnassigned, rec.Type)
	require.Len(t, rec.UserID, 5)
	require.False(t, rec.SignedUp.IsZero())
	require.NotEqual(t, "hunter22", rec.PasswordHash)
}

func TestSignup_Validation(t *testing.T) {
	repo := users.NewMemoryRepo()
	svc := NewService(testConfig(), repo)
	ctx := context.Background()

	require.ErrorIs(t, svc.Signup(ctx, "", "jane@example.com", "hunter22"), ErrValidation)
	require.ErrorIs(t, svc.Signup(ctx, "Jane", "nope", "hunter22"), ErrValidation)
	require.ErrorIs(t, svc.Signup(ctx, "Jane", "jane@example.com", "abc"), ErrValidation)
}

func TestLogin_NoExistenceOracle(t *testing.T) {
	repo := users.NewMemoryRepo()
	svc := NewService(testConfig(), repo)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jane Doe", "jane@example.com", "hunter22"))

	_, _, errWrongPassword := svc.Login(ctx, "jane@example.com", "not-the-password")
	_, _, errUnknownEmail := svc.Login(ctx, "ghost@example.com", "whatever1")

	// wrong password and unknown email are indistinguishable
	require.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	cfg := testConfig()
	repo := users.NewMemoryRepo()
	svc := NewService(cfg, repo)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jane Doe", "jane@example.com", "hunter22"))

	token, user, err := svc.Login(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", user.Email)

	claims, err := tokens.Parse(cfg, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.Role, claims.Role)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_StoreErrorIsNotInvalidCredentials(t *testing.T) {
	svc := NewService(testConfig(), failingRepo{})
	_, _, err := svc.Login(context.Background(), "jane@example.com", "hunter22")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalidCredentials))
}

// failingRepo simulates an unavailable store.
type failingRepo struct{}

var errStoreDown = errors.New("store unavailable")

func (failingRepo) Create(context.Context, *models.UserRecord) (string, error) {
	return "", errStoreDown
}
func (failingRepo) GetByEmail(context.Context, string) (*models.UserRecord, error) {
	return nil, errStoreDown
}
func (failingRepo) GetByID(context.Context, string) (*models.UserRecord, error) {
	return nil, errStoreDown
}
func (failingRepo) List(context.Context) ([]*models.UserRecord, error) { return nil, errStoreDown }
func (failingRepo) Count(context.Context) (int64, error)               { return 0, errStoreDown }
func (failingRepo) DeleteAll(context.Context) error                    { return errStoreDown }
func (failingRepo) InsertMany(context.Context, []*models.UserRecord) error {
	return errStoreDown
}
