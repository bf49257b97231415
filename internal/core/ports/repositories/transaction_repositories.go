package repositories

import (
	"context"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// TransactionReader defines read operations for the append-only transaction
// store.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions returns the requested page of transactions matching
	// the filter, plus the total match count before paging. Sorting is
	// stable; ties are broken by transaction id descending.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error)

	// ListRecentTransactions returns the newest transactions, newest first.
	ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	// Aggregate counters for the admin dashboard.
	CountTransactions(ctx context.Context) (int64, error)
	SumAmountsBetween(ctx context.Context, from, to time.Time) (amount int64, fee int64, count int64, err error)
}

// TransactionWriter defines write operations. Transactions are append-only;
// after creation only the status may change, and only along the legal state
// machine.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction and returns its assigned
	// sequential id. Type and status must already be set by the caller.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error)

	// UpdateTransactionStatus performs a compare-and-set from the expected
	// status to the target status. It fails with ErrInvalidState when the
	// stored status no longer equals from, which makes concurrent reversals
	// mutually exclusive by construction.
	UpdateTransactionStatus(ctx context.Context, transactionID int64, from, to domain.TransactionStatus) error

	// ReverseTransaction applies the balance changes and the status
	// compare-and-set (from -> to) in one atomic unit. If the CAS loses,
	// no balance is touched and ErrInvalidState is returned; at most one
	// reversal can ever succeed per transaction id.
	ReverseTransaction(ctx context.Context, transactionID int64, from, to domain.TransactionStatus, changes []domain.BalanceChange) error
}

// TransactionRepositoryFacade combines reader and writer.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
