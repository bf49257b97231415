package services

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// UserSvcFacade is the identity collaborator: registration and credential
// verification. Everything past this boundary trusts the (userID, role) pair.
type UserSvcFacade interface {
	// Register creates a user and their ordinary account in one step.
	Register(ctx context.Context, name, phoneNumber, password string) (*domain.User, error)

	// Authenticate verifies phone+password and returns the user, or
	// ErrForbidden on bad credentials or a disabled user.
	Authenticate(ctx context.Context, phoneNumber, password string) (*domain.User, error)

	// GetUserByID retrieves a user, or ErrNotFound.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
