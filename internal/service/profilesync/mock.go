package profilesync

import (
	"context"
	"sync"
)

// MockIdentityStore implements IdentityStore for unit tests.
type MockIdentityStore struct {
	mu sync.Mutex

	Identity Identity

	SetErr     error
	ClearErr   error
	RefreshErr error

	SetCalls     int
	ClearCalls   int
	RefreshCalls int
}

func (m *MockIdentityStore) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Identity.PhotoURL = photoURL
	return nil
}

func (m *MockIdentityStore) ClearPhotoURL(ctx context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Identity.PhotoURL = ""
	return nil
}

func (m *MockIdentityStore) Refresh(ctx context.Context, uid string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RefreshCalls++
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	snapshot := m.Identity
	return &snapshot, nil
}

// Compile-time interface check
var _ IdentityStore = (*MockIdentityStore)(nil)
