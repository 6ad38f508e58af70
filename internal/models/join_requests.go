package models

import "database/sql"

type JoinRequest struct {
	ID        int            `json:"id,omitempty" db:"id,omitempty"`
	FamilyID  int            `json:"family_id,omitempty" db:"family_id,omitempty"`
	UserID    int            `json:"user_id,omitempty" db:"user_id,omitempty"`
	Message   string         `json:"message,omitempty" db:"message,omitempty"`
	Username  string         `json:"username,omitempty" db:"-"`
	Email     string         `json:"email,omitempty" db:"-"`
	CreatedAt sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
