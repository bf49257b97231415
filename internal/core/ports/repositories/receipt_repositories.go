package repositories

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// ReceiptRepositoryFacade stores the transaction-to-receipt-number mapping.
// At most one receipt row exists per transaction id.
type ReceiptRepositoryFacade interface {
	// SaveReceipt inserts a receipt. Fails with ErrDuplicate when the
	// transaction already has one.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// FindReceiptByTransactionID retrieves the receipt issued for a
	// transaction, or ErrNotFound.
	FindReceiptByTransactionID(ctx context.Context, transactionID int64) (*domain.Receipt, error)

	// FindReceiptByNumber resolves a receipt number, or ErrNotFound.
	FindReceiptByNumber(ctx context.Context, number string) (*domain.Receipt, error)
}
