package domain

import "time"

type ID string

type Account struct {
	ID        ID
	Username  string
	Email     string
	Digest    string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput is the raw sign-up tuple. Password fields are write-only and
// never stored.
type CreateInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// WithAdmin returns a copy with the admin flag flipped. Identity fields and
// the digest are carried over untouched.
func (a Account) WithAdmin(isAdmin bool, at time.Time) Account {
	a.IsAdmin = isAdmin
	a.UpdatedAt = at
	return a
}
