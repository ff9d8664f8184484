// internal/identity/identity.go

// Package identity is a thin gateway to the managed authentication backend.
// Uniqueness, format, and credential checks all happen on the service side;
// this package only shapes requests and responses.
package identity

import (
	"context"
	"errors"
)

// ErrUserNotFound indicates no account exists for the given email.
var ErrUserNotFound = errors.New("user not found")

// User is the subset of the managed account record returned to clients.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"nama"`
}

// Service defines the identity operations used by the HTTP layer.
type Service interface {
	// Register creates a new account and sets its display name.
	Register(ctx context.Context, email, name, password string) (*User, error)

	// Login looks up the account by email and mints a sign-in token for it.
	// Returns ErrUserNotFound when no account exists.
	Login(ctx context.Context, email, password string) (string, error)
}
