package profile

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockProfileService implements Service for unit tests.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile

	// SetPhotoErr and MergePhotoErr, when set, are returned by the photo
	// operations instead of mutating state.
	SetPhotoErr   error
	MergePhotoErr error
}

// NewMockProfileService creates a new mock service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]*Profile),
	}
}

func (m *MockProfileService) Create(ctx context.Context, uid string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[uid]; exists {
		return nil, ErrAlreadyExists
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	displayName := strings.TrimSpace(params.DisplayName)
	if displayName == "" {
		displayName = UsernameFromEmail(email)
	}

	now := time.Now().UTC()
	p := &Profile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    params.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.profiles[uid] = p
	return p, nil
}

func (m *MockProfileService) Get(ctx context.Context, uid string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[uid]
	if !exists {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *MockProfileService) Update(ctx context.Context, uid string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[uid]
	if !exists {
		return nil, ErrNotFound
	}

	if params.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*params.Email))
	}
	if params.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}

func (m *MockProfileService) Delete(ctx context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[uid]; !exists {
		return ErrNotFound
	}
	delete(m.profiles, uid)
	return nil
}

func (m *MockProfileService) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetPhotoErr != nil {
		return m.SetPhotoErr
	}

	p, exists := m.profiles[uid]
	if !exists {
		return ErrNotFound
	}
	p.PhotoURL = photoURL
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockProfileService) MergePhoto(ctx context.Context, uid string, params MergeParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MergePhotoErr != nil {
		return m.MergePhotoErr
	}

	now := time.Now().UTC()
	p, exists := m.profiles[uid]
	if !exists {
		displayName := strings.TrimSpace(params.DisplayName)
		if displayName == "" {
			displayName = UsernameFromEmail(params.Email)
		}
		m.profiles[uid] = &Profile{
			UID:         uid,
			Email:       strings.ToLower(strings.TrimSpace(params.Email)),
			DisplayName: displayName,
			PhotoURL:    params.PhotoURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return nil
	}
	p.PhotoURL = params.PhotoURL
	p.UpdatedAt = now
	return nil
}

// Clear removes all profiles (useful for test cleanup).
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
