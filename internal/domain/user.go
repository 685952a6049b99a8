package domain

import "time"

// User represents an account. Accounts are created out of band (see cmd/seed);
// the API surface only reads them.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}
