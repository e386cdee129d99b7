// Package auth handles user accounts and authentication: registration, login,
// JWT token-pair issuance and refresh, and the bearer-token middleware that
// protects the rest of the API.
package auth

import (
	"errors"
	"time"
)

// DefaultStatus is assigned to accounts registered without a status.
const DefaultStatus = "simple"

// User is the persisted user profile. It is shared with the users package,
// which exposes it through its own response shapes.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never exposed
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Age            *int      `json:"age"`
	PhoneNumber    string    `json:"phone_number"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"is_active"`
	DateRegistered time.Time `json:"date_registered"`
}

// Store errors. Stores translate driver errors into these so the service layer
// does not depend on PostgreSQL error codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
