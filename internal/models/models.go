// Package models holds the database-shaped representations of the domain
// entities. Repositories map between these and the domain types.
package models

import "time"

// AuditFields mirrors the audit columns shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// Account is a row of the accounts table.
type Account struct {
	AccountID   string
	PhoneNumber string
	OwnerUserID string
	AccountType string
	Balance     int64
	IsActive    bool
	AuditFields
}

// Transaction is a row of the transactions table. Source/destination are
// nullable; their presence determined the stored type at creation time.
type Transaction struct {
	TransactionID        int64
	Amount               int64
	Fee                  int64
	SourceAccountID      *string
	DestinationAccountID *string
	Type                 string
	Status               string
	Note                 string
	Timestamp            time.Time
	CreatedBy            string
}

// Receipt is a row of the receipts table.
type Receipt struct {
	Number        string
	TransactionID int64
	GeneratedAt   time.Time
}

// User is a row of the users table.
type User struct {
	UserID       string
	Name         string
	PhoneNumber  string
	PasswordHash string
	Role         string
	Enabled      bool
	AuditFields
}
