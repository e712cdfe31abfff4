package domain

import "github.com/shopspring/decimal"

// CurrencyTRY is the default currency for new accounts.
const CurrencyTRY = "TRY"

// ValidateAmount checks an operation amount at the domain boundary.
// Amounts must be strictly positive and carry at most two decimal
// places; balances are fixed-point values and sub-cent inputs would
// silently accumulate drift.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}
