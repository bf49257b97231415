package domain

import "time"

// SortField names a transaction attribute the history listing can order by.
type SortField string

const (
	SortByTimestamp SortField = "timestamp"
	SortByAmount    SortField = "amount"
	SortByStatus    SortField = "status"
	SortByType      SortField = "type"
	SortByID        SortField = "id"
)

// SortDirection is the order applied to the sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TransactionFilter is a conjunction of predicates applied to the history
// listing. Zero values mean "no constraint".
type TransactionFilter struct {
	// Text matches account phone numbers or owner name fragments.
	Text string
	// Status, when set, requires exact status equality.
	Status *TransactionStatus
	// Type, when set, requires exact type equality.
	Type *TransactionType
	// From/To bound the transaction timestamp, inclusive.
	From *time.Time
	To   *time.Time
	// PartyAccountID restricts to transactions where the account is source or
	// destination. Used to scope user listings; empty for admin listings.
	PartyAccountID string
}

// PageRequest is an explicit zero-based page selection. The engine serves
// exactly the page asked for and never clamps out-of-range requests.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     SortField
	Dir      SortDirection
}

// BalanceChange is a single signed balance adjustment, in minor units.
// A set of changes applied atomically is the unit of ledger mutation.
type BalanceChange struct {
	AccountID string
	Delta     int64
}
