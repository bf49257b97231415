package domain

import "time"

// Receipt associates a completed transaction with a stable, opaque,
// retrievable reference number. At most one receipt exists per transaction.
type Receipt struct {
	Number        string    `json:"number"` // Unique, e.g. RC01J5XN3V9Q...
	TransactionID int64     `json:"transactionID"`
	GeneratedAt   time.Time `json:"generatedAt"`
}
