package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactPurchaseStatus_Owner(t *testing.T) {
	purchased := true
	buyer := 3
	gift := Gift{ID: 1, OwnerID: 5, IsPurchased: &purchased, PurchasedBy: &buyer}

	gift.RedactPurchaseStatus(5)

	assert.Nil(t, gift.IsPurchased)
	assert.Nil(t, gift.PurchasedBy)
}

func TestRedactPurchaseStatus_OtherViewer(t *testing.T) {
	purchased := true
	buyer := 3
	gift := Gift{ID: 1, OwnerID: 5, IsPurchased: &purchased, PurchasedBy: &buyer}

	gift.RedactPurchaseStatus(3)

	require.NotNil(t, gift.IsPurchased)
	assert.True(t, *gift.IsPurchased)
	require.NotNil(t, gift.PurchasedBy)
	assert.Equal(t, 3, *gift.PurchasedBy)
}
