package dto

import (
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// TransferRequest is the user-facing transfer command. The destination is
// addressed by phone number, the way the rest of the platform identifies
// accounts.
type TransferRequest struct {
	DestinationPhone string `json:"destinationPhone" binding:"required"`
	Amount           int64  `json:"amount" binding:"required,gt=0"`
}

// DepositRequest is the admin-only manual deposit command.
type DepositRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Note   string `json:"note"`
}

// WithdrawRequest is the admin-only manual withdrawal command.
type WithdrawRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Note   string `json:"note"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        int64     `json:"transactionID"`
	Amount               int64     `json:"amount"`
	Fee                  int64     `json:"fee"`
	SourceAccountID      *string   `json:"sourceAccountID,omitempty"`
	DestinationAccountID *string   `json:"destinationAccountID,omitempty"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	Note                 string    `json:"note,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
	ReceiptNumber        string    `json:"receiptNumber,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Amount:               txn.Amount,
		Fee:                  txn.Fee,
		SourceAccountID:      txn.SourceAccountID,
		DestinationAccountID: txn.DestinationAccountID,
		Type:                 string(txn.Type),
		Status:               string(txn.Status),
		Note:                 txn.Note,
		Timestamp:            txn.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
