package gifts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildGiftUpdate_AllFields(t *testing.T) {
	price := decimal.NewFromFloat(49.99)
	req := giftRequest{
		Title:       strPtr("  Lego Castle  "),
		Price:       &price,
		Description: strPtr("the big one"),
		PhotoURL:    strPtr("https://example.com/p.jpg"),
		BuyLink:     strPtr("https://example.com/buy"),
	}

	fields, args := buildGiftUpdate(req)

	require.Len(t, fields, 5)
	require.Len(t, args, 5)
	assert.Equal(t, "title = ?", fields[0])
	assert.Equal(t, "Lego Castle", args[0])
	assert.Equal(t, "price = ?", fields[1])
}

func TestBuildGiftUpdate_SparseFields(t *testing.T) {
	req := giftRequest{Description: strPtr("just the blurb")}

	fields, args := buildGiftUpdate(req)

	require.Len(t, fields, 1)
	assert.Equal(t, "description = ?", fields[0])
	assert.Equal(t, "just the blurb", args[0])
}

func TestBuildGiftUpdate_NoFields(t *testing.T) {
	fields, args := buildGiftUpdate(giftRequest{})

	assert.Empty(t, fields)
	assert.Empty(t, args)
}

func TestBuildGiftUpdate_IgnoresLinkSets(t *testing.T) {
	familyIDs := []int{1, 2}
	req := giftRequest{FamilyIDs: &familyIDs}

	fields, _ := buildGiftUpdate(req)
	assert.Empty(t, fields)
}
