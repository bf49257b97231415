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
)

// AccountRepository implements the account port on the shared store.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	if _, exists := s.accountByPhone[account.PhoneNumber]; exists {
		return fmt.Errorf("%w: phone number %s already has an account", apperrors.ErrDuplicate, account.PhoneNumber)
	}

	stored := account
	s.accounts[account.AccountID] = &stored
	s.accountByPhone[account.PhoneNumber] = account.AccountID
	if account.OwnerUserID != "" {
		s.accountByOwner[account.OwnerUserID] = account.AccountID
	}
	return nil
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountCopyLocked(accountID)
}

func (r *AccountRepository) FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	accountID, ok := s.accountByPhone[phoneNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.accountCopyLocked(accountID)
}

func (r *AccountRepository) FindAccountByOwner(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	accountID, ok := s.accountByOwner[ownerUserID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.accountCopyLocked(accountID)
}

func (r *AccountRepository) GetBalance(ctx context.Context, accountID string) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	return acc.Balance, nil
}

func (r *AccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		all = append(all, *acc)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].AccountID < all[j].AccountID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Account{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *AccountRepository) SearchAccounts(ctx context.Context, keyword string, limit int) ([]domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(keyword))
	matches := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if needle == "" || strings.Contains(strings.ToLower(acc.PhoneNumber), needle) || s.ownerNameMatchesLocked(acc.OwnerUserID, needle) {
			matches = append(matches, *acc)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].PhoneNumber < matches[j].PhoneNumber })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *AccountRepository) CountAccounts(ctx context.Context) (int64, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, active int64
	for _, acc := range s.accounts {
		total++
		if acc.IsActive {
			active++
		}
	}
	return total, active, nil
}

func (r *AccountRepository) CountAccountsByType(ctx context.Context) (map[domain.AccountType]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.AccountType]int64)
	for _, acc := range s.accounts {
		counts[acc.AccountType]++
	}
	return counts, nil
}

func (r *AccountRepository) TotalBalance(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, acc := range s.accounts {
		total += acc.Balance
	}
	return total, nil
}

func (r *AccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.IsActive = active
	acc.LastUpdatedAt = at
	acc.LastUpdatedBy = updatedBy
	return nil
}

func (r *AccountRepository) Debit(ctx context.Context, accountID string, amount int64) error {
	return r.ApplyAtomic(ctx, []domain.BalanceChange{{AccountID: accountID, Delta: -amount}})
}

func (r *AccountRepository) Credit(ctx context.Context, accountID string, amount int64) error {
	return r.ApplyAtomic(ctx, []domain.BalanceChange{{AccountID: accountID, Delta: amount}})
}

// ApplyAtomic validates every change against current state while holding the
// store lock, then applies them all. No partial application is ever
// observable.
func (r *AccountRepository) ApplyAtomic(ctx context.Context, changes []domain.BalanceChange) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyChangesLocked(changes)
}

// applyChangesLocked aggregates deltas per account, validates, then mutates.
// Callers must hold the write lock.
func (s *Store) applyChangesLocked(changes []domain.BalanceChange) error {
	deltas := make(map[string]int64, len(changes))
	for _, ch := range changes {
		deltas[ch.AccountID] += ch.Delta
	}

	for accountID, delta := range deltas {
		acc, ok := s.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, accountID)
		}
		if acc.Balance+delta < 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
		}
	}

	for accountID, delta := range deltas {
		s.accounts[accountID].Balance += delta
	}
	return nil
}

// accountCopyLocked returns a detached copy. Callers must hold a lock.
func (s *Store) accountCopyLocked(accountID string) (*domain.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *acc
	return &out, nil
}

func (s *Store) ownerNameMatchesLocked(ownerUserID, needle string) bool {
	user, ok := s.users[ownerUserID]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(user.Name), needle)
}
