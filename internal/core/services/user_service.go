package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/audit"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/utils"
	"github.com/google/uuid"
)

// UserService is the identity collaborator. Past this boundary everything
// trusts the (userID, role) pair it hands out.
type UserService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accountSvc portssvc.AccountSvcFacade) *UserService {
	return &UserService{userRepo: userRepo, accountSvc: accountSvc}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// Register creates a user and their ordinary account in one step. The phone
// number doubles as the login identifier and the account key.
func (s *UserService) Register(ctx context.Context, name, phoneNumber, password string) (*domain.User, error) {
	if name == "" || phoneNumber == "" {
		return nil, fmt.Errorf("%w: name and phone number are required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		PhoneNumber:  phoneNumber,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Enabled:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "registration",
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.accountSvc.CreateAccount(ctx, user.UserID, phoneNumber, domain.Ordinary); err != nil {
		// The user row without an account is unusable; surface the failure.
		return nil, fmt.Errorf("failed to open account for new user: %w", err)
	}

	audit.Log(ctx, audit.EventUserRegistered, slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate verifies phone+password. Bad credentials and disabled users
// both come back as ErrForbidden so callers cannot probe which one it was.
func (s *UserService) Authenticate(ctx context.Context, phoneNumber, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !user.Enabled {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
