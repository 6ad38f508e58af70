package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCheckCeiling_AcceptsWithinRemaining(t *testing.T) {
	// 100.00 gift, 60.00 pledged, 40.00 more fills it exactly.
	err := CheckCeiling(dec("100.00"), dec("60.00"), dec("40.00"))
	require.NoError(t, err)
}

func TestCheckCeiling_RejectsOverRemaining(t *testing.T) {
	err := CheckCeiling(dec("100.00"), dec("60.00"), dec("40.02"))
	assert.ErrorIs(t, err, ErrCeilingExceeded)
}

func TestCheckCeiling_EpsilonBoundary(t *testing.T) {
	// Exactly remaining + epsilon passes, one cent more does not.
	require.NoError(t, CheckCeiling(dec("100.00"), dec("60.00"), dec("40.01")))
	assert.ErrorIs(t, CheckCeiling(dec("100.00"), dec("60.00"), dec("40.011")), ErrCeilingExceeded)
}

func TestCheckCeiling_RejectsNonPositiveAmounts(t *testing.T) {
	assert.ErrorIs(t, CheckCeiling(dec("100.00"), dec("0"), dec("0")), ErrNonPositiveValue)
	assert.ErrorIs(t, CheckCeiling(dec("100.00"), dec("0"), dec("-5.00")), ErrNonPositiveValue)
}

func TestCheckCeiling_FullyFundedGift(t *testing.T) {
	err := CheckCeiling(dec("50.00"), dec("50.00"), dec("0.02"))
	assert.ErrorIs(t, err, ErrCeilingExceeded)
}

func TestRemaining(t *testing.T) {
	assert.True(t, Remaining(dec("120.50"), dec("20.50")).Equal(dec("100.00")))
	assert.True(t, Remaining(dec("10.00"), dec("10.00")).IsZero())
}

func TestFundingPercent(t *testing.T) {
	assert.True(t, FundingPercent(dec("200.00"), dec("50.00")).Equal(dec("25")))
	assert.True(t, FundingPercent(dec("3.00"), dec("1.00")).Equal(dec("33.33")))
	assert.True(t, FundingPercent(dec("100.00"), dec("100.00")).Equal(dec("100")))
}

func TestFundingPercent_ZeroPrice(t *testing.T) {
	assert.True(t, FundingPercent(decimal.Zero, dec("5.00")).IsZero())
}
