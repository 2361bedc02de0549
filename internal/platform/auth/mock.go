package auth

import (
	"context"
)

// MockVerifier is a canned Verifier for tests. Error, when set, wins over
// User.
type MockVerifier struct {
	User  *FirebaseUser
	Error error
}

func (m *MockVerifier) Verify(_ context.Context, _ string) (*FirebaseUser, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns the default authenticated user fixture.
func TestUser() *FirebaseUser {
	return &FirebaseUser{
		UID:           "test-user-123",
		Email:         "test@example.com",
		EmailVerified: true,
		DisplayName:   "Test User",
		PhotoURL:      "https://res.cloudinary.com/demo/image/upload/old-avatar.jpg",
	}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
