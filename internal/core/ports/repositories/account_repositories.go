package repositories

import (
	"context"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByPhone retrieves an account by its phone number key.
	FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error)

	// FindAccountByOwner retrieves the account owned by the given user.
	FindAccountByOwner(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// GetBalance returns the current balance in minor units.
	GetBalance(ctx context.Context, accountID string) (int64, error)

	// ListAccounts retrieves a page of accounts plus the total count.
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error)

	// SearchAccounts matches the keyword against phone numbers and owner names.
	SearchAccounts(ctx context.Context, keyword string, limit int) ([]domain.Account, error)

	// CountAccounts returns the total and active account counts.
	CountAccounts(ctx context.Context) (total int64, active int64, err error)

	// CountAccountsByType returns the number of accounts per account type.
	CountAccountsByType(ctx context.Context) (map[domain.AccountType]int64, error)

	// TotalBalance returns the sum of all account balances in minor units.
	TotalBalance(ctx context.Context) (int64, error)
}

// AccountWriter defines write operations for account data. All balance
// mutations are atomic: either the full set of changes is applied or none is,
// and no intermediate state is observable by concurrent operations.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the active flag. Accounts are never deleted.
	SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string, at time.Time) error

	// Debit atomically subtracts amount from the account balance. Fails with
	// ErrInsufficientFunds if the balance is lower than amount, with
	// ErrAccountInactive for deactivated accounts and ErrNotFound for unknown
	// ids.
	Debit(ctx context.Context, accountID string, amount int64) error

	// Credit atomically adds amount to the account balance. Fails with
	// ErrAccountInactive for deactivated accounts and ErrNotFound for unknown
	// ids.
	Credit(ctx context.Context, accountID string, amount int64) error

	// ApplyAtomic applies all balance changes as a single all-or-nothing
	// unit, locking the involved accounts in ascending id order. Any failed
	// precondition (unknown account, inactive account, balance underflow)
	// leaves every balance untouched.
	ApplyAtomic(ctx context.Context, changes []domain.BalanceChange) error
}

// AccountRepositoryFacade combines reader and writer for clients that need
// both.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
