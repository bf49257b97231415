// Package fees computes transfer fees. Policies are pure and deterministic so
// the ledger engine can treat them as interchangeable strategy objects.
package fees

import "github.com/shopspring/decimal"

// Policy computes the fee charged on top of a transfer amount.
// Implementations must be side-effect free.
type Policy interface {
	// Fee returns the fee in minor units for the given amount in minor units.
	Fee(amount int64) int64
	// Total returns amount plus its fee.
	Total(amount int64) int64
}

// PercentPolicy charges a fixed percentage of the amount, rounded up to the
// next minor unit. The reference policy is 1% (100 basis points).
type PercentPolicy struct {
	rate decimal.Decimal
}

// NewPercentPolicy creates a policy charging rateBasisPoints/10000 of the
// amount.
func NewPercentPolicy(rateBasisPoints int64) PercentPolicy {
	return PercentPolicy{rate: decimal.NewFromInt(rateBasisPoints).Div(decimal.NewFromInt(10000))}
}

// Default is the reference 1% policy.
func Default() PercentPolicy {
	return NewPercentPolicy(100)
}

// Fee returns ceil(amount * rate) in minor units.
func (p PercentPolicy) Fee(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(p.rate).Ceil().IntPart()
}

// Total returns amount + Fee(amount).
func (p PercentPolicy) Total(amount int64) int64 {
	return amount + p.Fee(amount)
}

var _ Policy = PercentPolicy{}
