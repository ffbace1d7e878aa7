package models

import "time"

// User is an account record. PasswordHash holds the argon2id-encoded hash
// and must never appear in a response body.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Bio          string
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResetToken is a single-use password recovery credential. Only the
// SHA-256 hash of the emailed value is stored; at most one row exists
// per user at any time.
type ResetToken struct {
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the token can no longer be consumed.
func (t ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
