package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	"github.com/diallo-dev/money_transfer_app/internal/utils/pagination"
)

// TransactionRepository implements the transaction port on the shared store.
type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txSeq++
	txn.TransactionID = s.txSeq
	stored := txn
	s.txs[txn.TransactionID] = &stored
	s.txOrder = append(s.txOrder, txn.TransactionID)
	return txn.TransactionID, nil
}

func (r *TransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID int64, from, to domain.TransactionStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casStatusLocked(transactionID, from, to)
}

func (r *TransactionRepository) ReverseTransaction(ctx context.Context, transactionID int64, from, to domain.TransactionStatus, changes []domain.BalanceChange) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate balances first so a failed apply leaves the status untouched.
	txn, ok := s.txs[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	if txn.Status != from {
		return fmt.Errorf("%w: transaction %d is %s, expected %s", apperrors.ErrInvalidState, transactionID, txn.Status, from)
	}
	if err := s.applyChangesLocked(changes); err != nil {
		return err
	}
	txn.Status = to
	return nil
}

func (s *Store) casStatusLocked(transactionID int64, from, to domain.TransactionStatus) error {
	txn, ok := s.txs[transactionID]
	if !ok {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	if txn.Status != from {
		return fmt.Errorf("%w: transaction %d is %s, expected %s", apperrors.ErrInvalidState, transactionID, txn.Status, from)
	}
	txn.Status = to
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.txs[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *txn
	return &out, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Transaction, 0)
	for _, id := range s.txOrder {
		txn := s.txs[id]
		if s.matchesFilterLocked(txn, filter) {
			matches = append(matches, *txn)
		}
	}

	sortTransactions(matches, page.Sort, page.Dir)

	total := int64(len(matches))
	offset := pagination.Offset(page.Page, page.PageSize)
	if offset >= len(matches) {
		return []domain.Transaction{}, total, nil
	}
	end := offset + page.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (r *TransactionRepository) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, 0, limit)
	for i := len(s.txOrder) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.txs[s.txOrder[i]])
	}
	return out, nil
}

func (r *TransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.txs)), nil
}

func (r *TransactionRepository) SumAmountsBetween(ctx context.Context, from, to time.Time) (int64, int64, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var amount, fee, count int64
	for _, txn := range s.txs {
		if txn.Timestamp.Before(from) || txn.Timestamp.After(to) {
			continue
		}
		if txn.Status != domain.StatusSuccess {
			continue
		}
		amount += txn.Amount
		fee += txn.Fee
		count++
	}
	return amount, fee, count, nil
}

// matchesFilterLocked evaluates the filter conjunction. Free text matches the
// phone number or owner name of either party account. Callers must hold a
// lock.
func (s *Store) matchesFilterLocked(txn *domain.Transaction, filter domain.TransactionFilter) bool {
	if filter.Status != nil && txn.Status != *filter.Status {
		return false
	}
	if filter.Type != nil && txn.Type != *filter.Type {
		return false
	}
	if filter.From != nil && txn.Timestamp.Before(*filter.From) {
		return false
	}
	if filter.To != nil && txn.Timestamp.After(*filter.To) {
		return false
	}
	if filter.PartyAccountID != "" && !txn.IsParty(filter.PartyAccountID) {
		return false
	}
	if filter.Text != "" {
		needle := strings.ToLower(strings.TrimSpace(filter.Text))
		if !s.partyTextMatchesLocked(txn.SourceAccountID, needle) && !s.partyTextMatchesLocked(txn.DestinationAccountID, needle) {
			return false
		}
	}
	return true
}

func (s *Store) partyTextMatchesLocked(accountID *string, needle string) bool {
	if accountID == nil {
		return false
	}
	acc, ok := s.accounts[*accountID]
	if !ok {
		return false
	}
	if strings.Contains(strings.ToLower(acc.PhoneNumber), needle) {
		return true
	}
	return s.ownerNameMatchesLocked(acc.OwnerUserID, needle)
}

// sortTransactions orders in place by the requested field, breaking ties by
// transaction id descending so pagination stays stable.
func sortTransactions(txs []domain.Transaction, field domain.SortField, dir domain.SortDirection) {
	desc := dir == domain.SortDesc
	less := func(i, j int) bool {
		a, b := txs[i], txs[j]
		var cmp int
		switch field {
		case domain.SortByAmount:
			cmp = compareInt64(a.Amount, b.Amount)
		case domain.SortByStatus:
			cmp = strings.Compare(string(a.Status), string(b.Status))
		case domain.SortByType:
			cmp = strings.Compare(string(a.Type), string(b.Type))
		case domain.SortByID:
			cmp = compareInt64(a.TransactionID, b.TransactionID)
		default: // SortByTimestamp
			switch {
			case a.Timestamp.Before(b.Timestamp):
				cmp = -1
			case a.Timestamp.After(b.Timestamp):
				cmp = 1
			}
		}
		if cmp == 0 {
			return a.TransactionID > b.TransactionID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(txs, less)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
