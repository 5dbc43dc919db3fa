package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Username and email are unique across
// all users; PasswordHash never carries the plaintext.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
