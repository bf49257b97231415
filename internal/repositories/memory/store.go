// Package memory implements the repository ports against in-process state.
// It backs the unit and interleaving tests and the DEV_MODE run mode; the
// pgsql package is the production implementation of the same contracts.
package memory

import (
	"sync"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
)

// Store is the shared state behind all memory repositories. A single mutex
// makes every multi-account mutation trivially atomic and linearizable;
// the postgres implementation achieves the same with ordered row locks.
type Store struct {
	mu sync.RWMutex

	accounts       map[string]*domain.Account // accountID -> account
	accountByPhone map[string]string          // phone -> accountID
	accountByOwner map[string]string          // ownerUserID -> accountID

	txSeq   int64
	txs     map[int64]*domain.Transaction
	txOrder []int64 // ids in creation order

	receiptByTx     map[int64]domain.Receipt
	receiptByNumber map[string]domain.Receipt

	users       map[string]*domain.User
	userByPhone map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:        make(map[string]*domain.Account),
		accountByPhone:  make(map[string]string),
		accountByOwner:  make(map[string]string),
		txs:             make(map[int64]*domain.Transaction),
		receiptByTx:     make(map[int64]domain.Receipt),
		receiptByNumber: make(map[string]domain.Receipt),
		users:           make(map[string]*domain.User),
		userByPhone:     make(map[string]string),
	}
}

// Provider bundles the store behind the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Account:     &AccountRepository{store: s},
		Transaction: &TransactionRepository{store: s},
		Receipt:     &ReceiptRepository{store: s},
		User:        &UserRepository{store: s},
	}
}
