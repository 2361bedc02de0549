package profilesync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/service/profile"
)

// Coordinator runs the two-step avatar sync: identity provider first, then
// the profile document.
type Coordinator struct {
	identities IdentityStore
	profiles   profile.Service
}

// NewCoordinator creates a sync coordinator.
func NewCoordinator(identities IdentityStore, profiles profile.Service) *Coordinator {
	return &Coordinator{identities: identities, profiles: profiles}
}

// Sync writes photoURL to the identity provider, then to the profile
// document, and returns the refreshed identity. When the document does not
// exist yet the write falls back to a merge-create carrying the identity
// snapshot. A document failure after the identity write is reported as
// ErrDocumentSync with no rollback; rerunning Sync with the same URL
// converges the records.
func (c *Coordinator) Sync(ctx context.Context, identity Identity, photoURL string) (*Identity, error) {
	return c.apply(ctx, identity, photoURL, false)
}

// Remove clears the avatar from both records. Removing an already absent
// avatar succeeds.
func (c *Coordinator) Remove(ctx context.Context, identity Identity) (*Identity, error) {
	return c.apply(ctx, identity, "", true)
}

func (c *Coordinator) apply(ctx context.Context, identity Identity, photoURL string, clear bool) (*Identity, error) {
	action := "avatar_sync"
	if clear {
		action = "avatar_remove"
	}

	var err error
	if clear {
		err = c.identities.ClearPhotoURL(ctx, identity.UID)
	} else {
		err = c.identities.SetPhotoURL(ctx, identity.UID, photoURL)
	}
	if err != nil {
		applog.LogAuditEvent(ctx, action, identity.UID, "identity", identity.UID, "failure",
			map[string]any{"stage": "identity"})
		return nil, fmt.Errorf("%w: %v", ErrProfileWrite, err)
	}

	if err := c.syncDocument(ctx, identity, photoURL); err != nil {
		// The identity write already persisted. Surface the failure and let a
		// later sync reconverge the document.
		applog.LogAuditEvent(ctx, action, identity.UID, "identity", identity.UID, "failure",
			map[string]any{"stage": "document"})
		return nil, fmt.Errorf("%w: %v", ErrDocumentSync, err)
	}

	refreshed, err := c.identities.Refresh(ctx, identity.UID)
	if err != nil {
		// Both writes landed; the stale snapshot is still usable.
		applog.LogWarn(ctx, "identity refresh failed after sync",
			zap.String("uid", identity.UID), zap.Error(err))
		fallback := identity
		fallback.PhotoURL = photoURL
		refreshed = &fallback
	}

	applog.LogAuditEvent(ctx, action, identity.UID, "identity", identity.UID, "success", nil)

	return refreshed, nil
}

// syncDocument updates the profile document's photo reference, creating the
// document from the identity snapshot only when it does not exist.
func (c *Coordinator) syncDocument(ctx context.Context, identity Identity, photoURL string) error {
	err := c.profiles.SetPhotoURL(ctx, identity.UID, photoURL)
	if err == nil {
		return nil
	}
	if !errors.Is(err, profile.ErrNotFound) {
		return err
	}

	applog.LogInfo(ctx, "profile document missing, creating via merge",
		zap.String("uid", identity.UID))

	return c.profiles.MergePhoto(ctx, identity.UID, profile.MergeParams{
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    photoURL,
	})
}
