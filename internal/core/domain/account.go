package domain

// AccountType tags the commercial flavour of an account.
type AccountType string

const (
	Ordinary AccountType = "ORDINARY"
	Savings  AccountType = "SAVINGS"
	Business AccountType = "BUSINESS"
)

// Account represents a money account identified by its phone number.
// Balance is held in non-negative integer minor units; it is mutated only
// through the ledger engine, never directly by callers.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	PhoneNumber string      `json:"phoneNumber"` // Unique, the user-facing account key
	OwnerUserID string      `json:"ownerUserID"` // FK -> users.user_id
	AccountType AccountType `json:"accountType"` // ORDINARY, SAVINGS, BUSINESS
	Balance     int64       `json:"balance"`     // Minor units, >= 0 at all times
	IsActive    bool        `json:"isActive"`    // Deactivated accounts accept no debit/credit
	AuditFields
}
