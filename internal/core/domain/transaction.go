package domain

import (
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/apperrors"
)

// TransactionStatus is the lifecycle state of a transaction.
// PENDING is the only non-terminal status.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusSuccess   TransactionStatus = "SUCCESS"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusRefunded  TransactionStatus = "REFUNDED"
)

// TransactionType is derived from which endpoints a transaction carries.
type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
)

// Transaction is a single monetary movement. Rows are append-only; once
// SUCCESS the only permitted mutations are the cancel/refund status
// transitions.
type Transaction struct {
	TransactionID        int64             `json:"transactionID"` // Sequential, assigned by the store
	Amount               int64             `json:"amount"`        // Positive, minor units
	Fee                  int64             `json:"fee"`           // Non-negative, minor units
	SourceAccountID      *string           `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string           `json:"destinationAccountID,omitempty"`
	Type                 TransactionType   `json:"type"`   // Stored at creation, never re-derived
	Status               TransactionStatus `json:"status"` // See CanTransitionTo
	Note                 string            `json:"note,omitempty"`
	Timestamp            time.Time         `json:"timestamp"`
	CreatedBy            string            `json:"createdBy"` // UserID of the caller
}

// Classify maps endpoint presence to a transaction type. The result is
// computed once at creation and persisted; consumers must never re-derive it
// from endpoint null-checks.
func Classify(hasSource, hasDestination bool) (TransactionType, error) {
	switch {
	case !hasSource && hasDestination:
		return TypeDeposit, nil
	case hasSource && !hasDestination:
		return TypeWithdrawal, nil
	case hasSource && hasDestination:
		return TypeTransfer, nil
	default:
		return "", apperrors.ErrMalformedTransaction
	}
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target: PENDING -> {SUCCESS, FAILED}; SUCCESS -> {CANCELLED, REFUNDED}.
// FAILED, CANCELLED and REFUNDED are terminal.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusSuccess || target == StatusFailed
	case StatusSuccess:
		return target == StatusCancelled || target == StatusRefunded
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s TransactionStatus) IsTerminal() bool {
	return s != StatusPending
}

// IsParty reports whether the given account is the source or destination of t.
func (t *Transaction) IsParty(accountID string) bool {
	if t.SourceAccountID != nil && *t.SourceAccountID == accountID {
		return true
	}
	if t.DestinationAccountID != nil && *t.DestinationAccountID == accountID {
		return true
	}
	return false
}
