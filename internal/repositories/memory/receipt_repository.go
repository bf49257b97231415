package memory

import (
	"context"
	"fmt"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
)

// ReceiptRepository implements the receipt port on the shared store.
type ReceiptRepository struct {
	store *Store
}

var _ portsrepo.ReceiptRepositoryFacade = (*ReceiptRepository)(nil)

func (r *ReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receiptByTx[receipt.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %d already has a receipt", apperrors.ErrDuplicate, receipt.TransactionID)
	}
	if _, exists := s.receiptByNumber[receipt.Number]; exists {
		return fmt.Errorf("%w: receipt number %s", apperrors.ErrDuplicate, receipt.Number)
	}
	s.receiptByTx[receipt.TransactionID] = receipt
	s.receiptByNumber[receipt.Number] = receipt
	return nil
}

func (r *ReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID int64) (*domain.Receipt, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipt, ok := s.receiptByTx[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &receipt, nil
}

func (r *ReceiptRepository) FindReceiptByNumber(ctx context.Context, number string) (*domain.Receipt, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipt, ok := s.receiptByNumber[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &receipt, nil
}
