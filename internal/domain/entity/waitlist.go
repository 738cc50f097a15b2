package entity

import (
	"strings"
	"time"
)

// WaitlistRequest is the body accepted by POST /api/waitlist.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// WaitlistEntry is a single signup handed to the store.
type WaitlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateEmail trims email and applies a minimal syntactic check: it must
// contain both "@" and ".". Full address validation is left to the mailer.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingEmail
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}
