package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipt data.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

// SaveReceipt inserts a receipt. The unique constraint on transaction_id
// enforces at most one receipt per transaction.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	query := `
		INSERT INTO receipts (number, transaction_id, generated_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, receipt.Number, receipt.TransactionID, receipt.GeneratedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: receipt for transaction %d", apperrors.ErrDuplicate, receipt.TransactionID)
		}
		return fmt.Errorf("failed to save receipt %s: %w", receipt.Number, err)
	}
	return nil
}

// FindReceiptByTransactionID retrieves the receipt issued for a transaction.
func (r *PgxReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID int64) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.Pool.QueryRow(ctx, `
		SELECT number, transaction_id, generated_at FROM receipts WHERE transaction_id = $1;
	`, transactionID).Scan(&receipt.Number, &receipt.TransactionID, &receipt.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt for transaction %d: %w", transactionID, err)
	}
	return &receipt, nil
}

// FindReceiptByNumber resolves a receipt number.
func (r *PgxReceiptRepository) FindReceiptByNumber(ctx context.Context, number string) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := r.Pool.QueryRow(ctx, `
		SELECT number, transaction_id, generated_at FROM receipts WHERE number = $1;
	`, number).Scan(&receipt.Number, &receipt.TransactionID, &receipt.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt %s: %w", number, err)
	}
	return &receipt, nil
}
