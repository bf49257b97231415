// Package pgsql implements the repository ports on PostgreSQL via pgx.
package pgsql

import (
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository onto the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Account:     newPgxAccountRepository(pool),
		Transaction: newPgxTransactionRepository(pool),
		Receipt:     newPgxReceiptRepository(pool),
		User:        newPgxUserRepository(pool),
	}
}
