package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
)

// UserRepository implements the user port on the shared store.
type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	if _, exists := s.userByPhone[user.PhoneNumber]; exists {
		return fmt.Errorf("%w: phone number %s is already registered", apperrors.ErrDuplicate, user.PhoneNumber)
	}

	stored := user
	s.users[user.UserID] = &stored
	s.userByPhone[user.PhoneNumber] = user.UserID
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) FindUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.userByPhone[phoneNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := *s.users[userID]
	return &user, nil
}

func (r *UserRepository) SetUserEnabled(ctx context.Context, userID string, enabled bool, updatedBy string, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Enabled = enabled
	user.LastUpdatedAt = at
	user.LastUpdatedBy = updatedBy
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, enabled int64
	for _, user := range s.users {
		total++
		if user.Enabled {
			enabled++
		}
	}
	return total, enabled, nil
}
