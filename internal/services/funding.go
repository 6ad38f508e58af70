package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Epsilon absorbs floating accumulation noise in ceiling checks. The
// tolerance is absolute (one cent), not relative.
var Epsilon = decimal.NewFromFloat(0.01)

var (
	ErrGiftNotFound     = errors.New("gift not found")
	ErrSelfFunding      = errors.New("owners cannot fund their own gift")
	ErrNotFamilyMember  = errors.New("actor is not a member of any family associated with the gift")
	ErrCeilingExceeded  = errors.New("contribution exceeds the remaining amount for this gift")
	ErrNonPositiveValue = errors.New("amount must be greater than 0")
)

// Remaining is how much can still be pledged toward a gift.
func Remaining(price, contributed decimal.Decimal) decimal.Decimal {
	return price.Sub(contributed)
}

// CheckCeiling validates a new pledge of amount against a gift priced at
// price with contributed already pledged by others. The total may exceed
// the price by at most Epsilon.
func CheckCeiling(price, contributed, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveValue
	}
	if amount.GreaterThan(Remaining(price, contributed).Add(Epsilon)) {
		return ErrCeilingExceeded
	}
	return nil
}

// FundingPercent reports contributed/price as a percentage rounded to two
// places. A zero-priced gift counts as 0% funded rather than dividing by zero.
func FundingPercent(price, contributed decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return contributed.Div(price).Mul(decimal.NewFromInt(100)).Round(2)
}
