package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents a registered customer in the domain layer.
// Authentication state (password hash) lives here, but verifying
// credentials and issuing tokens is the auth usecase's job.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	IsActive     bool
}

// Validate ensures the user adheres to domain rules
// Returns an error if validation fails
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("user email cannot be empty")
	}

	if u.PasswordHash == "" {
		return errors.New("user password hash cannot be empty")
	}

	if u.FirstName == "" || u.LastName == "" {
		return errors.New("user name cannot be empty")
	}

	return nil
}

// FullName returns the display name used in dashboard views
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
