package services

import (
	"context"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
)

// HistorySvcFacade serves paginated, filtered, sorted transaction listings.
// It never mutates; the ledger engine is the only writer.
type HistorySvcFacade interface {
	// List returns the requested page. Non-admin callers are scoped to
	// transactions where their own account is a party; admins see everything.
	List(ctx context.Context, caller domain.Caller, filter domain.TransactionFilter, page domain.PageRequest) (*dto.ListTransactionsResponse, error)

	// GetTransaction retrieves one transaction, subject to the same scoping.
	GetTransaction(ctx context.Context, caller domain.Caller, transactionID int64) (*dto.TransactionResponse, error)

	// Recent returns the newest transactions. Admin only.
	Recent(ctx context.Context, caller domain.Caller, limit int) ([]dto.TransactionResponse, error)
}
