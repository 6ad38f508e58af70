package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Contribution struct {
	ID          int             `json:"id,omitempty" db:"id,omitempty"`
	GiftID      int             `json:"gift_id,omitempty" db:"gift_id,omitempty"`
	UserID      int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount,omitempty" db:"amount,omitempty"`
	Message     string          `json:"message,omitempty" db:"message,omitempty"`
	IsAnonymous bool            `json:"is_anonymous" db:"is_anonymous"`
	CreatedAt   sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
}

// ContributionView is the payload returned to family members browsing a
// gift's contribution list. Contributor stays nil for anonymous pledges.
type ContributionView struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Message     string          `json:"message,omitempty"`
	IsAnonymous bool            `json:"is_anonymous"`
	Contributor *string         `json:"contributor"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

// View redacts the contributor identity when the pledge is anonymous.
func (c *Contribution) View(contributorName string) ContributionView {
	view := ContributionView{
		ID:          c.ID,
		Amount:      c.Amount,
		Message:     c.Message,
		IsAnonymous: c.IsAnonymous,
	}
	if c.CreatedAt.Valid {
		view.CreatedAt = c.CreatedAt.String
	}
	if !c.IsAnonymous {
		name := contributorName
		view.Contributor = &name
	}
	return view
}
