package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/avatar-service/internal/platform/logging"
)

const usersCollection = "users"

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreUser maps to the Firestore document structure. Field names match
// the client-facing schema so the same documents can be read by web clients
// without translation.
type firestoreUser struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	PhotoURL    string    `firestore:"photoURL"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func (fu firestoreUser) toProfile() *Profile {
	return &Profile{
		UID:         fu.UID,
		Email:       fu.Email,
		DisplayName: fu.DisplayName,
		PhotoURL:    fu.PhotoURL,
		CreatedAt:   fu.CreatedAt,
		UpdatedAt:   fu.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create creates a new user document using a transaction to prevent
// duplicates.
func (s *FirestoreStore) Create(ctx context.Context, uid string, params CreateParams) (*Profile, error) {
	docRef := s.client.Collection(usersCollection).Doc(uid)
	now := time.Now().UTC()

	email := strings.ToLower(strings.TrimSpace(params.Email))
	displayName := strings.TrimSpace(params.DisplayName)
	if displayName == "" {
		displayName = UsernameFromEmail(email)
	}

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		fu := firestoreUser{
			UID:         uid,
			Email:       email,
			DisplayName: displayName,
			PhotoURL:    params.PhotoURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := tx.Set(docRef, fu); err != nil {
			return err
		}

		result = fu.toProfile()
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", uid, "profile", uid, "success", nil)

	return result, nil
}

// Get retrieves a user document by UID.
func (s *FirestoreStore) Get(ctx context.Context, uid string) (*Profile, error) {
	docRef := s.client.Collection(usersCollection).Doc(uid)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fu firestoreUser
	if err := doc.DataTo(&fu); err != nil {
		return nil, err
	}
	fu.UID = uid

	return fu.toProfile(), nil
}

// Update updates a user document using a transaction for atomicity.
func (s *FirestoreStore) Update(ctx context.Context, uid string, params UpdateParams) (*Profile, error) {
	docRef := s.client.Collection(usersCollection).Doc(uid)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fu firestoreUser
		if err := doc.DataTo(&fu); err != nil {
			return err
		}
		fu.UID = uid

		if params.Email != nil {
			fu.Email = strings.ToLower(strings.TrimSpace(*params.Email))
		}
		if params.DisplayName != nil {
			fu.DisplayName = strings.TrimSpace(*params.DisplayName)
		}
		fu.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, fu); err != nil {
			return err
		}

		result = fu.toProfile()
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", uid, "profile", uid, "success", nil)

	return result, nil
}

// Delete removes a user document using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, uid string) error {
	docRef := s.client.Collection(usersCollection).Doc(uid)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", uid, "profile", uid, "success", nil)

	return nil
}

// SetPhotoURL overwrites the photo reference on an existing document. The
// write targets only photoURL and updatedAt so concurrent profile edits are
// not clobbered. Firestore reports a missing document as NotFound, which is
// mapped to ErrNotFound so callers can decide on a fallback.
func (s *FirestoreStore) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	docRef := s.client.Collection(usersCollection).Doc(uid)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "photoURL", Value: photoURL},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		applog.LogAuditEvent(ctx, "set_photo", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "set_photo", uid, "profile", uid, "success", nil)

	return nil
}

// MergePhoto creates or merges the document with the identity snapshot plus
// the photo reference. Used as the fallback when SetPhotoURL finds no
// document to update.
func (s *FirestoreStore) MergePhoto(ctx context.Context, uid string, params MergeParams) error {
	docRef := s.client.Collection(usersCollection).Doc(uid)
	now := time.Now().UTC()

	displayName := strings.TrimSpace(params.DisplayName)
	if displayName == "" {
		displayName = UsernameFromEmail(params.Email)
	}

	_, err := docRef.Set(ctx, map[string]any{
		"uid":         uid,
		"email":       strings.ToLower(strings.TrimSpace(params.Email)),
		"displayName": displayName,
		"photoURL":    params.PhotoURL,
		"createdAt":   now,
		"updatedAt":   now,
	}, firestore.MergeAll)
	if err != nil {
		applog.LogAuditEvent(ctx, "merge_photo", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "merge_photo", uid, "profile", uid, "success", nil)

	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
