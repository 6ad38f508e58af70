package models

import "database/sql"

type Invitation struct {
	ID         int            `json:"id,omitempty" db:"id,omitempty"`
	FamilyID   int            `json:"family_id,omitempty" db:"family_id,omitempty"`
	Email      string         `json:"email,omitempty" db:"email,omitempty"`
	Token      string         `json:"-" db:"token,omitempty"`
	InvitedBy  int            `json:"invited_by,omitempty" db:"invited_by,omitempty"`
	Accepted   bool           `json:"accepted" db:"accepted"`
	FamilyName string         `json:"family_name,omitempty" db:"-"`
	CreatedAt  sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
