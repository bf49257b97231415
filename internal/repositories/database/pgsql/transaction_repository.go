package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	"github.com/diallo-dev/money_transfer_app/internal/models"
	"github.com/diallo-dev/money_transfer_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		Amount:               m.Amount,
		Fee:                  m.Fee,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		Type:                 domain.TransactionType(m.Type),
		Status:               domain.TransactionStatus(m.Status),
		Note:                 m.Note,
		Timestamp:            m.Timestamp,
		CreatedBy:            m.CreatedBy,
	}
}

const transactionColumns = `transaction_id, amount, fee, source_account_id, destination_account_id, type, status, note, timestamp, created_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Amount,
		&m.Fee,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.Type,
		&m.Status,
		&m.Note,
		&m.Timestamp,
		&m.CreatedBy,
	)
	return m, err
}

// CreateTransaction inserts a new transaction and returns the id assigned by
// the database sequence.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (amount, fee, source_account_id, destination_account_id, type, status, note, timestamp, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transaction_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		txn.Amount,
		txn.Fee,
		txn.SourceAccountID,
		txn.DestinationAccountID,
		string(txn.Type),
		string(txn.Status),
		txn.Note,
		txn.Timestamp,
		txn.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	return id, nil
}

// UpdateTransactionStatus performs the compare-and-set in a single UPDATE.
// Zero rows affected means either the transaction is unknown or another
// caller already moved it out of the expected status.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID int64, from, to domain.TransactionStatus) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions SET status = $3
		WHERE transaction_id = $1 AND status = $2;
	`, transactionID, string(from), string(to))
	if err != nil {
		return fmt.Errorf("failed to update transaction %d status: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d is not %s", apperrors.ErrInvalidState, transactionID, from)
	}
	return nil
}

// ReverseTransaction flips the status and applies the balance changes inside
// one database transaction. The conditional UPDATE is the arbiter: whichever
// concurrent reversal updates the row first wins, the other rolls back with
// ErrInvalidState and no balance effect.
func (r *PgxTransactionRepository) ReverseTransaction(ctx context.Context, transactionID int64, from, to domain.TransactionStatus, changes []domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE transactions SET status = $3
		WHERE transaction_id = $1 AND status = $2;
	`, transactionID, string(from), string(to))
	if err != nil {
		return fmt.Errorf("failed to update transaction %d status: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d is not %s", apperrors.ErrInvalidState, transactionID, from)
	}

	if err := applyBalanceChangesInTx(ctx, tx, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// sortColumns whitelists the order-by targets. Anything else falls back to
// the timestamp.
var sortColumns = map[domain.SortField]string{
	domain.SortByTimestamp: "t.timestamp",
	domain.SortByAmount:    "t.amount",
	domain.SortByStatus:    "t.status",
	domain.SortByType:      "t.type",
	domain.SortByID:        "t.transaction_id",
}

// ListTransactions builds the filter conjunction dynamically and serves the
// exact page requested, zero-based.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page domain.PageRequest) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any

	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "t.status = "+addArg(string(*filter.Status)))
	}
	if filter.Type != nil {
		conditions = append(conditions, "t.type = "+addArg(string(*filter.Type)))
	}
	if filter.From != nil {
		conditions = append(conditions, "t.timestamp >= "+addArg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "t.timestamp <= "+addArg(*filter.To))
	}
	if filter.PartyAccountID != "" {
		p := addArg(filter.PartyAccountID)
		conditions = append(conditions, "(t.source_account_id = "+p+" OR t.destination_account_id = "+p+")")
	}
	if filter.Text != "" {
		p := addArg(filter.Text)
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM accounts a
			LEFT JOIN users u ON u.user_id = a.owner_user_id
			WHERE a.account_id IN (t.source_account_id, t.destination_account_id)
			  AND (a.phone_number ILIKE '%' || `+p+` || '%' OR u.name ILIKE '%' || `+p+` || '%')
		)`)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions t` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	column, ok := sortColumns[page.Sort]
	if !ok {
		column = sortColumns[domain.SortByTimestamp]
	}
	direction := "ASC"
	if page.Dir == domain.SortDesc {
		direction = "DESC"
	}

	limitArg := addArg(page.PageSize)
	offsetArg := addArg(pagination.Offset(page.Page, page.PageSize))
	query := `SELECT ` + transactionColumns + ` FROM transactions t` + where +
		` ORDER BY ` + column + ` ` + direction + `, t.transaction_id DESC LIMIT ` + limitArg + ` OFFSET ` + offsetArg + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, page.PageSize)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, total, nil
}

// ListRecentTransactions returns the newest transactions, newest first.
func (r *PgxTransactionRepository) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY transaction_id DESC LIMIT $1;`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// CountTransactions returns the total number of transactions.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// SumAmountsBetween totals the successful volume inside the window, inclusive.
func (r *PgxTransactionRepository) SumAmountsBetween(ctx context.Context, from, to time.Time) (int64, int64, int64, error) {
	var amount, fee, count int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(fee), 0), COUNT(*)
		FROM transactions
		WHERE status = $1 AND timestamp >= $2 AND timestamp <= $3;
	`, string(domain.StatusSuccess), from, to).Scan(&amount, &fee, &count)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}
	return amount, fee, count, nil
}
