package dto

import (
	"time"

	"github.com/diallo-dev/money_transfer_app/internal/core/domain"
)

// ReceiptResponse defines the data returned for a receipt reference.
type ReceiptResponse struct {
	Number        string    `json:"number"`
	TransactionID int64     `json:"transactionID"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		Number:        r.Number,
		TransactionID: r.TransactionID,
		GeneratedAt:   r.GeneratedAt,
	}
}
