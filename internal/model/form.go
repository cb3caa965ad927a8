package model

import "time"

// Form is a user-owned form definition plus its running visit and
// submission counters.
//
// The `db` tags are used by pgx.RowToStructByName; column order does not
// matter but every selected column must have a matching field.
type Form struct {
	ID          int64     `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Published   bool      `json:"published" db:"published"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content" db:"content"`
	Visits      int64     `json:"visits" db:"visits"`
	Submissions int64     `json:"submissions" db:"submissions"`
	ShareURL    string    `json:"shareUrl" db:"share_url"`
}

// FormDraft is what the service hands to the repository on insert.
// Identifier, timestamps and counters are assigned by the store.
type FormDraft struct {
	UserID      string
	Name        string
	Description string
}

// CreateFormResponse is returned after a successful insert.
type CreateFormResponse struct {
	ID int64 `json:"id"`
}
