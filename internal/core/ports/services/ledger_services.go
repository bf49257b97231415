package services

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// LedgerSvcFacade orchestrates every balance-mutating operation. It is the
// only writer of account balances; every accepted command leaves a durable
// transaction record with its outcome.
type LedgerSvcFacade interface {
	// Transfer moves amount from the caller's account to the account behind
	// destinationPhone, charging the fee policy on top. The returned
	// transaction is SUCCESS, or the error explains the FAILED record.
	Transfer(ctx context.Context, caller domain.Caller, destinationPhone string, amount int64) (*domain.Transaction, error)

	// Deposit credits an account directly. Admin only.
	Deposit(ctx context.Context, caller domain.Caller, accountID string, amount int64, note string) (*domain.Transaction, error)

	// Withdraw debits an account directly. Admin only.
	Withdraw(ctx context.Context, caller domain.Caller, accountID string, amount int64, note string) (*domain.Transaction, error)

	// Cancel reverses a SUCCESS transaction of any type. Admin only. At most
	// one reversal ever succeeds per transaction id.
	Cancel(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Transaction, error)

	// Refund is the party-initiated reversal, restricted to TRANSFER and
	// DEPOSIT types. Allowed for admins and for callers who are a party to
	// the transaction.
	Refund(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Transaction, error)
}
