package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Gift struct {
	ID          int             `json:"id,omitempty" db:"id,omitempty"`
	Title       string          `json:"title,omitempty" db:"title,omitempty"`
	Price       decimal.Decimal `json:"price,omitempty" db:"price,omitempty"`
	Description string          `json:"description,omitempty" db:"description,omitempty"`
	PhotoURL    string          `json:"photo_url,omitempty" db:"photo_url,omitempty"`
	BuyLink     string          `json:"buy_link,omitempty" db:"buy_link,omitempty"`
	OwnerID     int             `json:"owner_id,omitempty" db:"owner_id,omitempty"`
	IsPurchased *bool           `json:"is_purchased,omitempty" db:"is_purchased,omitempty"`
	PurchasedBy *int            `json:"purchased_by,omitempty" db:"purchased_by,omitempty"`
	FamilyIDs   []int           `json:"family_ids,omitempty" db:"-"`
	Beneficiary []int           `json:"beneficiary_ids,omitempty" db:"-"`
	CreatedAt   sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt   sql.NullString  `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}

// RedactPurchaseStatus blanks the purchase fields on a gift payload bound for
// its owner. The owner must never learn whether their gift was claimed.
func (g *Gift) RedactPurchaseStatus(viewerID int) {
	if viewerID == g.OwnerID {
		g.IsPurchased = nil
		g.PurchasedBy = nil
	}
}
