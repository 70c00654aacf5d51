package domain

import "time"

// RefreshToken is stored by hash only; RawToken is set just after issuing so
// it can be handed to the client once.
type RefreshToken struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
	RawToken  string
}

func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
