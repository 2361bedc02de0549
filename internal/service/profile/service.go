package profile

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is the extended user record held in the document store. It is
// dual-homed with the identity provider: PhotoURL must match the identity
// provider's field after a successful avatar sync.
type Profile struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams for creating a profile. An empty DisplayName is derived from
// the email's local part.
type CreateParams struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// UpdateParams for updating a profile. Only non-nil fields are applied.
type UpdateParams struct {
	Email       *string
	DisplayName *string
}

// MergeParams populates the create-or-merge fallback write used when the
// document does not exist yet during an avatar sync.
type MergeParams struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// Service defines profile document operations.
//
// Implementations must normalize input data:
//   - Email: lowercase and trim whitespace
//   - DisplayName: trim whitespace
type Service interface {
	Create(ctx context.Context, uid string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, uid string) (*Profile, error)
	Update(ctx context.Context, uid string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, uid string) error

	// SetPhotoURL overwrites photoURL and updatedAt on an existing document,
	// failing with ErrNotFound when the document is absent. The URL may be
	// empty to clear the photo.
	SetPhotoURL(ctx context.Context, uid, photoURL string) error

	// MergePhoto creates or merges the document with the full identity
	// snapshot plus the photo reference.
	MergePhoto(ctx context.Context, uid string, params MergeParams) error
}
