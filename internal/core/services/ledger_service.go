package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
	"github.com/diallo-dev/money_transfer_app/internal/audit"
	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
	"github.com/diallo-dev/money_transfer_app/internal/core/fees"
	portsrepo "github.com/diallo-dev/money_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/diallo-dev/money_transfer_app/internal/core/ports/services"
	"github.com/diallo-dev/money_transfer_app/internal/obs"
)

// LedgerService is the single writer of account balances. Every accepted
// command produces a durable transaction record: SUCCESS when the balances
// moved, FAILED when a precondition rejected the movement.
type LedgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	receiptSvc  portssvc.ReceiptSvcFacade
	feePolicy   fees.Policy
	// feeAccountID collects transfer fees. When empty the fee is debited
	// from the sender without a counter-credit.
	feeAccountID string
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	receiptSvc portssvc.ReceiptSvcFacade,
	feePolicy fees.Policy,
	feeAccountID string,
) *LedgerService {
	return &LedgerService{
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		receiptSvc:   receiptSvc,
		feePolicy:    feePolicy,
		feeAccountID: feeAccountID,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// Transfer moves amount from the caller's account to the account behind
// destinationPhone. The fee is charged to the sender on top of the amount,
// and the whole movement is applied as one atomic unit.
func (s *LedgerService) Transfer(ctx context.Context, caller domain.Caller, destinationPhone string, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidAmount)
	}

	source, err := s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller account: %w", err)
	}
	if !source.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, source.AccountID)
	}

	destination, err := s.accountRepo.FindAccountByPhone(ctx, destinationPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination account: %w", err)
	}
	if destination.AccountID == source.AccountID {
		return nil, fmt.Errorf("%w: cannot transfer to own account", apperrors.ErrValidation)
	}
	if !destination.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, destination.AccountID)
	}

	fee := s.feePolicy.Fee(amount)
	txn := domain.Transaction{
		Amount:               amount,
		Fee:                  fee,
		SourceAccountID:      &source.AccountID,
		DestinationAccountID: &destination.AccountID,
		Type:                 domain.TypeTransfer,
		Status:               domain.StatusPending,
		Timestamp:            time.Now().UTC(),
		CreatedBy:            caller.UserID,
	}

	changes := []domain.BalanceChange{
		{AccountID: source.AccountID, Delta: -(amount + fee)},
		{AccountID: destination.AccountID, Delta: amount},
	}
	if s.feeAccountID != "" && fee > 0 {
		changes = append(changes, domain.BalanceChange{AccountID: s.feeAccountID, Delta: fee})
	}

	result, err := s.execute(ctx, txn, changes)
	if err != nil {
		obs.ObserveLedgerOp("transfer", "failed")
		return result, err
	}

	obs.ObserveLedgerOp("transfer", "success")
	obs.ObserveLedgerAmount("transfer", amount)
	audit.Log(ctx, audit.EventTransfer,
		slog.Int64("transaction_id", result.TransactionID),
		slog.Int64("amount", amount),
		slog.Int64("fee", fee),
		slog.String("source_account_id", source.AccountID),
		slog.String("destination_account_id", destination.AccountID),
	)
	return result, nil
}

// Deposit credits an account directly. Admin only; no fee is charged.
func (s *LedgerService) Deposit(ctx context.Context, caller domain.Caller, accountID string, amount int64, note string) (*domain.Transaction, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: deposits require the admin role", apperrors.ErrForbidden)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrInvalidAmount)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deposit account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, account.AccountID)
	}

	txn := domain.Transaction{
		Amount:               amount,
		DestinationAccountID: &account.AccountID,
		Type:                 domain.TypeDeposit,
		Status:               domain.StatusPending,
		Note:                 note,
		Timestamp:            time.Now().UTC(),
		CreatedBy:            caller.UserID,
	}
	changes := []domain.BalanceChange{{AccountID: account.AccountID, Delta: amount}}

	result, err := s.execute(ctx, txn, changes)
	if err != nil {
		obs.ObserveLedgerOp("deposit", "failed")
		return result, err
	}

	obs.ObserveLedgerOp("deposit", "success")
	obs.ObserveLedgerAmount("deposit", amount)
	audit.Log(ctx, audit.EventDeposit,
		slog.Int64("transaction_id", result.TransactionID),
		slog.Int64("amount", amount),
		slog.String("account_id", account.AccountID),
	)
	return result, nil
}

// Withdraw debits an account directly. Admin only; no fee is charged.
func (s *LedgerService) Withdraw(ctx context.Context, caller domain.Caller, accountID string, amount int64, note string) (*domain.Transaction, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: withdrawals require the admin role", apperrors.ErrForbidden)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrInvalidAmount)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve withdrawal account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, account.AccountID)
	}

	txn := domain.Transaction{
		Amount:          amount,
		SourceAccountID: &account.AccountID,
		Type:            domain.TypeWithdrawal,
		Status:          domain.StatusPending,
		Note:            note,
		Timestamp:       time.Now().UTC(),
		CreatedBy:       caller.UserID,
	}
	changes := []domain.BalanceChange{{AccountID: account.AccountID, Delta: -amount}}

	result, err := s.execute(ctx, txn, changes)
	if err != nil {
		obs.ObserveLedgerOp("withdraw", "failed")
		return result, err
	}

	obs.ObserveLedgerOp("withdraw", "success")
	obs.ObserveLedgerAmount("withdraw", amount)
	audit.Log(ctx, audit.EventWithdraw,
		slog.Int64("transaction_id", result.TransactionID),
		slog.Int64("amount", amount),
		slog.String("account_id", account.AccountID),
	)
	return result, nil
}

// execute persists the pending record, applies the balance changes and
// settles the final status. A rejected application still leaves a durable
// FAILED record alongside the error.
func (s *LedgerService) execute(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange) (*domain.Transaction, error) {
	id, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	txn.TransactionID = id

	if applyErr := s.accountRepo.ApplyAtomic(ctx, changes); applyErr != nil {
		if casErr := s.txnRepo.UpdateTransactionStatus(ctx, id, domain.StatusPending, domain.StatusFailed); casErr != nil {
			s.LogError(ctx, casErr, "failed to mark transaction FAILED", slog.Int64("transaction_id", id))
		}
		txn.Status = domain.StatusFailed
		return &txn, applyErr
	}

	if err := s.txnRepo.UpdateTransactionStatus(ctx, id, domain.StatusPending, domain.StatusSuccess); err != nil {
		return nil, fmt.Errorf("failed to mark transaction %d SUCCESS: %w", id, err)
	}
	txn.Status = domain.StatusSuccess

	// Receipt issuance is best-effort; the receipt service can issue later
	// on demand.
	if s.receiptSvc != nil {
		if _, err := s.receiptSvc.Issue(ctx, id); err != nil {
			s.LogError(ctx, err, "failed to issue receipt", slog.Int64("transaction_id", id))
		}
	}
	return &txn, nil
}

// Cancel reverses a SUCCESS transaction of any type. Admin only.
func (s *LedgerService) Cancel(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Transaction, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: cancellation requires the admin role", apperrors.ErrForbidden)
	}

	txn, err := s.reverse(ctx, transactionID, domain.StatusCancelled)
	if err != nil {
		obs.ObserveLedgerOp("cancel", "failed")
		return nil, err
	}

	obs.ObserveLedgerOp("cancel", "success")
	audit.Log(ctx, audit.EventCancel, slog.Int64("transaction_id", transactionID))
	return txn, nil
}

// Refund is the party-initiated reversal, restricted to TRANSFER and DEPOSIT
// types. Allowed for admins and for callers who are a party.
func (s *LedgerService) Refund(ctx context.Context, caller domain.Caller, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", transactionID, err)
	}
	if txn.Type == domain.TypeWithdrawal {
		return nil, fmt.Errorf("%w: withdrawals cannot be refunded", apperrors.ErrInvalidState)
	}
	if !caller.IsAdmin() {
		account, err := s.accountRepo.FindAccountByOwner(ctx, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve caller account: %w", err)
		}
		if !txn.IsParty(account.AccountID) {
			return nil, fmt.Errorf("%w: only parties to the transaction may refund it", apperrors.ErrForbidden)
		}
	}

	reversed, err := s.reverse(ctx, transactionID, domain.StatusRefunded)
	if err != nil {
		obs.ObserveLedgerOp("refund", "failed")
		return nil, err
	}

	obs.ObserveLedgerOp("refund", "success")
	audit.Log(ctx, audit.EventRefund, slog.Int64("transaction_id", transactionID))
	return reversed, nil
}

// reverse undoes a SUCCESS transaction, moving it to the target terminal
// status. The repository applies the status compare-and-set and the balance
// restoration atomically, so at most one reversal per transaction can ever
// win.
func (s *LedgerService) reverse(ctx context.Context, transactionID int64, target domain.TransactionStatus) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: transaction %d is %s", apperrors.ErrInvalidState, transactionID, txn.Status)
	}

	changes := s.reversalChanges(txn)
	if err := s.txnRepo.ReverseTransaction(ctx, transactionID, domain.StatusSuccess, target, changes); err != nil {
		return nil, err
	}

	txn.Status = target
	return txn, nil
}

// reversalChanges inverts the balance movement the transaction applied,
// fee included: both parties end up exactly where they started.
func (s *LedgerService) reversalChanges(txn *domain.Transaction) []domain.BalanceChange {
	var changes []domain.BalanceChange
	if txn.SourceAccountID != nil {
		changes = append(changes, domain.BalanceChange{AccountID: *txn.SourceAccountID, Delta: txn.Amount + txn.Fee})
	}
	if txn.DestinationAccountID != nil {
		changes = append(changes, domain.BalanceChange{AccountID: *txn.DestinationAccountID, Delta: -txn.Amount})
	}
	if s.feeAccountID != "" && txn.Fee > 0 {
		changes = append(changes, domain.BalanceChange{AccountID: s.feeAccountID, Delta: -txn.Fee})
	}
	return changes
}
