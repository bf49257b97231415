package services

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// ReceiptSvcFacade issues and resolves receipt references for completed
// transactions.
type ReceiptSvcFacade interface {
	// Issue returns the receipt for a SUCCESS transaction, creating it on
	// first call. Idempotent: repeated calls return the same number.
	Issue(ctx context.Context, transactionID int64) (*domain.Receipt, error)

	// GetForTransaction returns the receipt issued for a transaction,
	// restricted to parties of the transaction and admins.
	GetForTransaction(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Receipt, error)

	// Resolve maps a receipt number back to its transaction, with the same
	// access restriction.
	Resolve(ctx context.Context, caller domain.Caller, number string) (*domain.Transaction, error)
}
