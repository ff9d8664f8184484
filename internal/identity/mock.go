// internal/identity/mock.go
package identity

import (
	"context"
	"fmt"
)

// MockService is a mock implementation of Service for testing.
type MockService struct {
	// Users maps email to the account returned by Login lookups
	Users map[string]*User
	// Token is returned from successful Login calls
	Token string
	// ShouldError if true, every call returns an error
	ShouldError bool
	// ErrorMessage is the error message to return when ShouldError is true
	ErrorMessage string
	// RegisterCalls and LoginCalls track invocations
	RegisterCalls int
	LoginCalls    int
}

// NewMockService creates a MockService with no registered users.
func NewMockService() *MockService {
	return &MockService{
		Users: make(map[string]*User),
		Token: "mock-token",
	}
}

func (m *MockService) err() error {
	if m.ErrorMessage != "" {
		return fmt.Errorf("%s", m.ErrorMessage)
	}
	return fmt.Errorf("mock identity error")
}

// Register records the call and stores the user under a generated uid.
func (m *MockService) Register(ctx context.Context, email, name, password string) (*User, error) {
	m.RegisterCalls++
	if m.ShouldError {
		return nil, m.err()
	}

	user := &User{
		UID:   fmt.Sprintf("uid-%d", len(m.Users)+1),
		Email: email,
		Name:  name,
	}
	m.Users[email] = user
	return user, nil
}

// Login returns the configured token when the email is known.
func (m *MockService) Login(ctx context.Context, email, password string) (string, error) {
	m.LoginCalls++
	if m.ShouldError {
		return "", m.err()
	}

	if _, ok := m.Users[email]; !ok {
		return "", ErrUserNotFound
	}
	return m.Token, nil
}

// Ensure MockService implements Service at compile time
var _ Service = (*MockService)(nil)
