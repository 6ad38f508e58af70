package models

import "database/sql"

type FamilyMember struct {
	ID       int            `json:"id,omitempty" db:"id,omitempty"`
	FamilyID int            `json:"family_id,omitempty" db:"family_id,omitempty"`
	UserID   int            `json:"user_id,omitempty" db:"user_id,omitempty"`
	JoinedAt sql.NullString `json:"joined_at,omitempty" db:"joined_at,omitempty"`
}
