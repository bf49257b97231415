package repositories

import (
	"context"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// UserRepositoryFacade persists platform users (the identity collaborator's
// storage).
type UserRepositoryFacade interface {
	// SaveUser inserts a new user. Fails with ErrDuplicate when the phone
	// number is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by id, or ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by login phone number, or ErrNotFound.
	FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)

	// SetUserEnabled flips the enabled flag.
	SetUserEnabled(ctx context.Context, userID string, enabled bool, updatedBy string, at time.Time) error

	// CountUsers returns the total and enabled user counts.
	CountUsers(ctx context.Context) (total int64, enabled int64, err error)
}
