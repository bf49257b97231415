package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/audit"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/utils"
)

// ReceiptService issues and resolves receipt references. Exactly one receipt
// number ever exists per transaction; issuance is idempotent.
type ReceiptService struct {
	BaseService
	receiptRepo portsrepo.ReceiptRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo, txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.ReceiptSvcFacade = (*ReceiptService)(nil)

// Issue returns the receipt for a SUCCESS transaction, creating it on first
// call. A concurrent double-issue loses the insert race and falls back to the
// stored row, so every caller observes the same number.
func (s *ReceiptService) Issue(ctx context.Context, transactionID int64) (*domain.Receipt, error) {
	if existing, err := s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up receipt for transaction %d: %w", transactionID, err)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", transactionID, err)
	}
	if txn.Status != domain.StatusSuccess {
		return nil, fmt.Errorf("%w: receipts are only issued for successful transactions, got %s", apperrors.ErrInvalidState, txn.Status)
	}

	receipt := domain.Receipt{
		Number:        utils.NewReceiptNumber(),
		TransactionID: transactionID,
		GeneratedAt:   time.Now().UTC(),
	}
	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
		}
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	audit.Log(ctx, audit.EventReceiptIssued,
		slog.Int64("transaction_id", transactionID),
		slog.String("receipt_number", receipt.Number),
	)
	return &receipt, nil
}

// GetForTransaction returns the receipt issued for a transaction, restricted
// to parties of the transaction and admins.
func (s *ReceiptService) GetForTransaction(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Receipt, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParty(ctx, caller, txn); err != nil {
		return nil, err
	}
	return s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
}

// Resolve maps a receipt number back to its transaction, with the same access
// restriction as GetForTransaction.
func (s *ReceiptService) Resolve(ctx context.Context, caller domain.Caller, number string) (*domain.Transaction, error) {
	receipt, err := s.receiptRepo.FindReceiptByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, receipt.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", receipt.TransactionID, err)
	}
	if err := s.authorizeParty(ctx, caller, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *ReceiptService) authorizeParty(ctx context.Context, caller domain.Caller, txn *domain.Transaction) error {
	if caller.IsAdmin() {
		return nil
	}
	account, err := s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve caller account: %w", err)
	}
	if !txn.IsParty(account.AccountID) {
		return fmt.Errorf("%w: receipt belongs to other parties", apperrors.ErrForbidden)
	}
	return nil
}
