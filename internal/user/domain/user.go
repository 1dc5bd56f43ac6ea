package domain

import (
	"strings"
	"time"

	"paperbase/internal/fault"
)

// User is the core user entity. A user is owned by no single company; it may
// hold memberships in several companies and is deleted only when the last of
// those memberships is removed.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
// Email comparison is case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate validates the user for persistence. Returns a fault.Validation
// describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return fault.Validation("email", "is required")
	}
	if u.Email != NormalizeEmail(u.Email) {
		return fault.Validation("email", "must be lowercase and trimmed")
	}
	if u.PasswordHash == "" {
		return fault.Validation("password", "is required")
	}
	return nil
}
