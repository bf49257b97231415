package services

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
)

// AccountSvcFacade manages accounts: creation at registration, lookups, and
// the admin surface (listing, search, deactivation).
type AccountSvcFacade interface {
	// CreateAccount opens an account for the given owner. Balance starts at
	// zero; only the ledger engine mutates it afterwards.
	CreateAccount(ctx context.Context, ownerUserID, phoneNumber string, accountType domain.AccountType) (*domain.Account, error)

	// GetAccountByID retrieves an account; non-admin callers may only see
	// their own.
	GetAccountByID(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error)

	// GetOwnAccount retrieves the caller's account.
	GetOwnAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error)

	// GetBalance returns the current balance in minor units.
	GetBalance(ctx context.Context, caller domain.Caller, accountID string) (int64, error)

	// ListAccounts returns a page of all accounts. Admin only.
	ListAccounts(ctx context.Context, caller domain.Caller, page, pageSize int) (*dto.ListAccountsResponse, error)

	// SearchAccounts matches phone numbers and owner names. Admin only.
	SearchAccounts(ctx context.Context, caller domain.Caller, keyword string) ([]dto.AccountResponse, error)

	// ToggleAccountStatus flips the active flag. Admin only; accounts are
	// deactivated, never deleted.
	ToggleAccountStatus(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error)
}
