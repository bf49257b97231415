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
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/diallo-dev/money_transfer_app/internal/utils/pagination"
	"github.com/google/uuid"
)

// AccountService manages account lifecycle and the admin account surface.
// Balances are read here but only ever written by the ledger service.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount opens an account for the given owner with a zero balance.
func (s *AccountService) CreateAccount(ctx context.Context, ownerUserID, phoneNumber string, accountType domain.AccountType) (*domain.Account, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", apperrors.ErrValidation)
	}
	switch accountType {
	case domain.Ordinary, domain.Savings, domain.Business:
	case "":
		accountType = domain.Ordinary
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		PhoneNumber: phoneNumber,
		OwnerUserID: ownerUserID,
		AccountType: accountType,
		Balance:     0,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "account created",
		slog.String("account_id", account.AccountID),
		slog.String("owner_user_id", ownerUserID),
	)
	return &account, nil
}

// GetAccountByID retrieves an account. Non-admin callers may only see their
// own.
func (s *AccountService) GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && account.OwnerUserID != caller.UserID {
		return nil, fmt.Errorf("%w: account belongs to another user", apperrors.ErrForbidden)
	}
	return account, nil
}

// GetOwnAccount retrieves the caller's account.
func (s *AccountService) GetOwnAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	return s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
}

// GetBalance returns the current balance in minor units, subject to the same
// ownership scoping as GetAccountByID.
func (s *AccountService) GetBalance(ctx context.Context, caller domain.Caller, accountID string) (int64, error) {
	account, err := s.GetAccountByID(ctx, caller, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// ListAccounts returns a page of all accounts. Admin only.
func (s *AccountService) ListAccounts(ctx context.Context, caller domain.Caller, page, pageSize int) (*dto.ListAccountsResponse, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: listing accounts requires the admin role", apperrors.ErrForbidden)
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page must be >= 0", apperrors.ErrValidation)
	}
	pageSize = pagination.ClampPageSize(pageSize)

	accounts, total, err := s.accountRepo.ListAccounts(ctx, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return &dto.ListAccountsResponse{
		Accounts:   dto.ToAccountResponses(accounts),
		TotalCount: total,
		TotalPages: pagination.TotalPages(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// SearchAccounts matches phone numbers and owner names. Admin only.
func (s *AccountService) SearchAccounts(ctx context.Context, caller domain.Caller, keyword string) ([]dto.AccountResponse, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: searching accounts requires the admin role", apperrors.ErrForbidden)
	}
	accounts, err := s.accountRepo.SearchAccounts(ctx, keyword, pagination.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return dto.ToAccountResponses(accounts), nil
}

// ToggleAccountStatus flips the active flag. Admin only; accounts are
// deactivated rather than deleted so their history stays intact.
func (s *AccountService) ToggleAccountStatus(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: toggling accounts requires the admin role", apperrors.ErrForbidden)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newState := !account.IsActive
	if err := s.accountRepo.SetAccountActive(ctx, accountID, newState, caller.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to toggle account %s: %w", accountID, err)
	}
	account.IsActive = newState
	account.LastUpdatedAt = now
	account.LastUpdatedBy = caller.UserID

	audit.Log(ctx, audit.EventAccountToggled,
		slog.String("account_id", accountID),
		slog.Bool("is_active", newState),
	)
	return account, nil
}
