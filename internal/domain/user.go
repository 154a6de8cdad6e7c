package domain

import "time"

// User represents a registered account. PasswordHash is the only credential
// material ever persisted; the plaintext never leaves the auth service.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
