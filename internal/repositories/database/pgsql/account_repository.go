package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	"github.com/diallo-dev/money_transfer_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		PhoneNumber: d.PhoneNumber,
		OwnerUserID: d.OwnerUserID,
		AccountType: string(d.AccountType),
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		PhoneNumber: m.PhoneNumber,
		OwnerUserID: m.OwnerUserID,
		AccountType: domain.AccountType(m.AccountType),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, phone_number, owner_user_id, account_type, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.PhoneNumber,
		&m.OwnerUserID,
		&m.AccountType,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. Unique violations on the id or the phone
// number map to ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.PhoneNumber,
		m.OwnerUserID,
		m.AccountType,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account for phone %s already exists", apperrors.ErrDuplicate, m.PhoneNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByPhone retrieves an account by its phone number key.
func (r *PgxAccountRepository) FindAccountByPhone(ctx context.Context, phoneNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone_number = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by phone: %w", err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountByOwner retrieves the account owned by the given user.
func (r *PgxAccountRepository) FindAccountByOwner(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_user_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, ownerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for owner %s: %w", ownerUserID, err)
	}
	acc := toDomainAccount(m)
	return &acc, nil
}

// GetBalance returns the current balance in minor units.
func (r *PgxAccountRepository) GetBalance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := r.Pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1;`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// ListAccounts retrieves a page of accounts plus the total count.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, total, nil
}

// SearchAccounts matches the keyword against phone numbers and owner names.
func (r *PgxAccountRepository) SearchAccounts(ctx context.Context, keyword string, limit int) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.phone_number, a.owner_user_id, a.account_type, a.balance, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM accounts a
		LEFT JOIN users u ON u.user_id = a.owner_user_id
		WHERE a.phone_number ILIKE '%' || $1 || '%' OR u.name ILIKE '%' || $1 || '%'
		ORDER BY a.phone_number
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// CountAccounts returns the total and active account counts.
func (r *PgxAccountRepository) CountAccounts(ctx context.Context) (int64, int64, error) {
	var total, active int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM accounts;`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return total, active, nil
}

// CountAccountsByType returns the number of accounts per account type.
func (r *PgxAccountRepository) CountAccountsByType(ctx context.Context) (map[domain.AccountType]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_type, COUNT(*) FROM accounts GROUP BY account_type;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.AccountType]int64)
	for rows.Next() {
		var accountType string
		var count int64
		if err := rows.Scan(&accountType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan account type count: %w", err)
		}
		counts[domain.AccountType(accountType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type counts: %w", err)
	}
	return counts, nil
}

// TotalBalance returns the sum of all account balances in minor units.
func (r *PgxAccountRepository) TotalBalance(ctx context.Context) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM accounts;`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total balances: %w", err)
	}
	return total, nil
}

// SetAccountActive flips the active flag.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, updatedBy string, at time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, active, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update account %s active flag: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Debit atomically subtracts amount from the account balance.
func (r *PgxAccountRepository) Debit(ctx context.Context, accountID string, amount int64) error {
	return r.ApplyAtomic(ctx, []domain.BalanceChange{{AccountID: accountID, Delta: -amount}})
}

// Credit atomically adds amount to the account balance.
func (r *PgxAccountRepository) Credit(ctx context.Context, accountID string, amount int64) error {
	return r.ApplyAtomic(ctx, []domain.BalanceChange{{AccountID: accountID, Delta: amount}})
}

// ApplyAtomic applies all balance changes as a single all-or-nothing unit.
func (r *PgxAccountRepository) ApplyAtomic(ctx context.Context, changes []domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceChangesInTx(ctx, tx, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// applyBalanceChangesInTx aggregates the deltas per account, locks the
// involved rows in ascending account_id order, validates the preconditions,
// then applies the updates. Runs inside the caller's transaction so reversals
// can combine it with a status change.
func applyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes []domain.BalanceChange) error {
	deltas := make(map[string]int64, len(changes))
	for _, ch := range changes {
		deltas[ch.AccountID] += ch.Delta
	}
	if len(deltas) == 0 {
		return nil
	}

	// Fixed lock order prevents deadlocks between concurrent mutations
	// touching overlapping account sets.
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows, err := tx.Query(ctx, `
		SELECT account_id, balance, is_active
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}

	locked := make(map[string]struct {
		balance int64
		active  bool
	}, len(ids))
	for rows.Next() {
		var id string
		var balance int64
		var active bool
		if err := rows.Scan(&id, &balance, &active); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[id] = struct {
			balance int64
			active  bool
		}{balance, active}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range ids {
		state, ok := locked[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !state.active {
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, id)
		}
		if state.balance+deltas[id] < 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, id)
		}
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`UPDATE accounts SET balance = balance + $2 WHERE account_id = $1;`, id, deltas[id])
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range ids {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to apply balance change: %w", err)
		}
	}
	return nil
}
