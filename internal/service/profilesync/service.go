// Package profilesync propagates avatar changes across the two user records:
// the identity provider entry and the profile document. The identity provider
// is the primary; the document is written second and a failure there is
// surfaced without rolling the identity back. Re-running the same sync
// converges both records.
package profilesync

import (
	"context"
	"errors"
)

// Coordinator errors
var (
	// ErrProfileWrite means the identity provider update failed. Nothing has
	// been written anywhere when this is returned.
	ErrProfileWrite = errors.New("failed to update profile")

	// ErrDocumentSync means the identity provider was updated but the profile
	// document write failed. The two records are out of sync until the next
	// successful sync.
	ErrDocumentSync = errors.New("failed to sync profile document")
)

// Identity is the caller-visible snapshot of the identity provider record.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// IdentityStore abstracts the identity provider's user record operations.
type IdentityStore interface {
	// SetPhotoURL writes the photo reference on the user record.
	SetPhotoURL(ctx context.Context, uid, photoURL string) error

	// ClearPhotoURL removes the photo reference from the user record.
	ClearPhotoURL(ctx context.Context, uid string) error

	// Refresh re-reads the user record from the provider.
	Refresh(ctx context.Context, uid string) (*Identity, error)
}
