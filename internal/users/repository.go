package users

import (
	"context"
	"errors"

	"github.com/pulsedash/pulsedash/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create collides with an existing
	// email. Email is the login key and must stay unique.
	ErrDuplicateEmail = errors.New("user already exists")
)

// Repository defines persistence operations for user records. List returns
// records in store-native order; callers must not rely on any sorting.
type Repository interface {
	Create(ctx context.Context, u *models.UserRecord) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	GetByID(ctx context.Context, id string) (*models.UserRecord, error)
	List(ctx context.Context) ([]*models.UserRecord, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, recs []*models.UserRecord) error
}
