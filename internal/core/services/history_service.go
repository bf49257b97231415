package services

import (
	"context"
	"fmt"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/dto"
	"github.com/diallo-dev/money_transfer_app/internal/utils/pagination"
)

// HistoryService serves the read side of the ledger: filtered, sorted,
// paginated listings. Non-admin callers only ever see transactions their own
// account is a party to.
type HistoryService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *HistoryService {
	return &HistoryService{txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.HistorySvcFacade = (*HistoryService)(nil)

// List returns the exact page requested, zero-based. Out-of-range pages come
// back empty with the true total count, never clamped to the last page.
func (s *HistoryService) List(ctx context.Context, caller domain.Caller, filter domain.TransactionFilter, page domain.PageRequest) (*dto.ListTransactionsResponse, error) {
	if page.Page < 0 {
		return nil, fmt.Errorf("%w: page must be >= 0", apperrors.ErrValidation)
	}
	page.PageSize = pagination.ClampPageSize(page.PageSize)
	if page.Sort == "" {
		page.Sort = domain.SortByTimestamp
	}
	if page.Dir == "" {
		page.Dir = domain.SortDesc
	}

	if !caller.IsAdmin() {
		account, err := s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve caller account: %w", err)
		}
		filter.PartyAccountID = account.AccountID
	}

	txns, total, err := s.txnRepo.ListTransactions(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		TotalCount:   total,
		TotalPages:   pagination.TotalPages(total, page.PageSize),
		Page:         page.Page,
		PageSize:     page.PageSize,
	}, nil
}

// GetTransaction retrieves one transaction, subject to the same scoping as
// List.
func (s *HistoryService) GetTransaction(ctx context.Context, caller domain.Caller, transactionID int64) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		account, err := s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve caller account: %w", err)
		}
		if !txn.IsParty(account.AccountID) {
			return nil, fmt.Errorf("%w: transaction belongs to other parties", apperrors.ErrForbidden)
		}
	}
	resp := dto.ToTransactionResponse(txn)
	return &resp, nil
}

// Recent returns the newest transactions. Admin only.
func (s *HistoryService) Recent(ctx context.Context, caller domain.Caller, limit int) ([]dto.TransactionResponse, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: recent activity requires the admin role", apperrors.ErrForbidden)
	}
	if limit <= 0 || limit > pagination.MaxPageSize {
		limit = pagination.DefaultPageSize
	}
	txns, err := s.txnRepo.ListRecentTransactions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return dto.ToTransactionResponses(txns), nil
}
