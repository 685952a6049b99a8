package domain

import "time"

// Token is an opaque bearer credential. Exactly one row exists per user;
// it is allocated on first login and reused afterwards.
type Token struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}
