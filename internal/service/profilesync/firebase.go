package profilesync

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseIdentityStore implements IdentityStore against Firebase Auth.
type FirebaseIdentityStore struct {
	client *auth.Client
}

// NewFirebaseIdentityStore creates an identity store backed by Firebase Auth.
func NewFirebaseIdentityStore(client *auth.Client) *FirebaseIdentityStore {
	return &FirebaseIdentityStore{client: client}
}

func (s *FirebaseIdentityStore) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	update := (&auth.UserToUpdate{}).PhotoURL(photoURL)
	if _, err := s.client.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("updating user %s: %w", uid, err)
	}
	return nil
}

// ClearPhotoURL removes the photo field entirely. The Admin SDK treats an
// empty PhotoURL as a field deletion.
func (s *FirebaseIdentityStore) ClearPhotoURL(ctx context.Context, uid string) error {
	update := (&auth.UserToUpdate{}).PhotoURL("")
	if _, err := s.client.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("clearing photo for user %s: %w", uid, err)
	}
	return nil
}

func (s *FirebaseIdentityStore) Refresh(ctx context.Context, uid string) (*Identity, error) {
	record, err := s.client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("reading user %s: %w", uid, err)
	}
	return &Identity{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}, nil
}

// Compile-time interface check
var _ IdentityStore = (*FirebaseIdentityStore)(nil)
