package model

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account. Users are donors and requesters at the
// same time; there are no roles.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser holds the fields needed to create a user. The password is
// already hashed by the caller.
type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// ValidateEmail performs a minimal sanity check on an email address.
// Lookups are exact-match, so no normalization happens here.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
