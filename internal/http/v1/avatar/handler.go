package avatar

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	avatarcore "github.com/janisto/avatar-service/internal/avatar"
	"github.com/janisto/avatar-service/internal/platform/auth"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/service/avatarsession"
	"github.com/janisto/avatar-service/internal/service/profilesync"
	"github.com/janisto/avatar-service/internal/service/storage"
)

// Remover clears the avatar from the user records.
type Remover interface {
	Remove(ctx context.Context, identity profilesync.Identity) (*profilesync.Identity, error)
}

// Register registers avatar endpoints.
func Register(api huma.API, sessions *avatarsession.Manager, remover Remover, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "open-avatar-session",
		Method:        http.MethodPost,
		Path:          "/avatar/session",
		Summary:       "Start an avatar editing session",
		Description:   "Validates the raw image body and opens an editing session with an inline preview. Replaces any existing session.",
		Tags:          []string{"Avatar"},
		DefaultStatus: http.StatusCreated,
		// Above the validator's 5 MiB cap but still bounded, so oversized
		// uploads get the size message instead of a blunt 413.
		MaxBodyBytes: 6 << 20,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SessionOpenInput) (*SessionOpenOutput, error) {
		user := auth.UserFromContext(ctx)

		session, err := sessions.Open(ctx, user.UID, avatarcore.CandidateImage{
			Data:        input.RawBody,
			ContentType: input.ContentType,
		})
		if err != nil {
			return nil, mapSessionError(err)
		}
		return &SessionOpenOutput{
			Location: prefix + "/avatar/session/" + session.ID,
			Body:     toHTTPSession(session),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-avatar-session",
		Method:      http.MethodGet,
		Path:        "/avatar/session/{id}",
		Summary:     "Get the editing session state",
		Tags:        []string{"Avatar"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SessionGetInput) (*SessionGetOutput, error) {
		user := auth.UserFromContext(ctx)

		session, err := sessions.Get(ctx, user.UID, input.SessionID)
		if err != nil {
			return nil, mapSessionError(err)
		}
		return &SessionGetOutput{Body: toHTTPSession(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "adjust-avatar-session",
		Method:      http.MethodPatch,
		Path:        "/avatar/session/{id}",
		Summary:     "Adjust zoom or rotation",
		Description: "Applies zoom, a quarter-turn rotation, or a reset to the session. Zoom is clamped to [100,200]; rotations accumulate freely.",
		Tags:        []string{"Avatar"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SessionAdjustInput) (*SessionAdjustOutput, error) {
		user := auth.UserFromContext(ctx)

		session, err := sessions.Adjust(ctx, user.UID, input.SessionID, avatarsession.AdjustParams{
			ZoomPercent: input.Body.ZoomPercent,
			Rotate:      input.Body.Rotate,
			Reset:       input.Body.Reset,
		})
		if err != nil {
			return nil, mapSessionError(err)
		}
		return &SessionAdjustOutput{Body: toHTTPSession(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-avatar-session",
		Method:      http.MethodPost,
		Path:        "/avatar/session/{id}/save",
		Summary:     "Render, store and sync the avatar",
		Description: "Renders the session's image with its transform, uploads the result and syncs the stored URL to the user's records. The session must still be current when the upload completes.",
		Tags:        []string{"Avatar"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SessionSaveInput) (*SessionSaveOutput, error) {
		user := auth.UserFromContext(ctx)

		result, err := sessions.Save(ctx, user.UID, input.SessionID, identityOf(user), logProgress(ctx))
		if err != nil {
			return nil, mapSessionError(err)
		}
		return &SessionSaveOutput{
			Body: SavedAvatar{
				PhotoURL: result.AvatarURL,
				PublicID: result.PublicID,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "cancel-avatar-session",
		Method:        http.MethodDelete,
		Path:          "/avatar/session/{id}",
		Summary:       "Discard the editing session",
		Tags:          []string{"Avatar"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SessionCancelInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := sessions.Cancel(ctx, user.UID, input.SessionID); err != nil {
			return nil, mapSessionError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "remove-avatar",
		Method:        http.MethodDelete,
		Path:          "/avatar",
		Summary:       "Remove the current avatar",
		Description:   "Clears the avatar from the identity provider and the profile document. Removing an absent avatar succeeds.",
		Tags:          []string{"Avatar"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *RemoveInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if _, err := remover.Remove(ctx, identityOf(user)); err != nil {
			return nil, mapSessionError(err)
		}
		return nil, nil
	})
}

func identityOf(user *auth.FirebaseUser) profilesync.Identity {
	return profilesync.Identity{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
}

// logProgress reports upload progress into the request log.
func logProgress(ctx context.Context) storage.ProgressFunc {
	return func(p storage.Progress) {
		applog.LogInfo(ctx, "avatar upload progress",
			zap.Int("percent", p.Percent),
			zap.Int64("loaded", p.Loaded),
			zap.Int64("total", p.Total),
		)
	}
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, avatarcore.ErrInvalidFormat):
		return huma.Error415UnsupportedMediaType(avatarcore.ErrInvalidFormat.Error())
	case errors.Is(err, avatarcore.ErrFileTooLarge):
		return huma.Error422UnprocessableEntity(avatarcore.ErrFileTooLarge.Error())
	case errors.Is(err, avatarcore.ErrUnreadableImage):
		return huma.Error422UnprocessableEntity("image could not be decoded")
	case errors.Is(err, avatarsession.ErrInvalidRotation):
		return huma.Error422UnprocessableEntity(avatarsession.ErrInvalidRotation.Error())
	case errors.Is(err, avatarsession.ErrSessionNotFound):
		return huma.Error404NotFound("avatar session not found")
	case errors.Is(err, avatarsession.ErrStaleSession):
		return huma.Error409Conflict("avatar session changed during save, try again")
	case errors.Is(err, storage.ErrMissingConfiguration):
		return huma.Error500InternalServerError("avatar storage is not configured")
	case errors.Is(err, storage.ErrTransport),
		errors.Is(err, storage.ErrRejected),
		errors.Is(err, storage.ErrResponseParse):
		return huma.Error502BadGateway("avatar upload failed")
	case errors.Is(err, profilesync.ErrProfileWrite):
		return huma.Error502BadGateway("failed to update identity record")
	case errors.Is(err, profilesync.ErrDocumentSync):
		return huma.Error502BadGateway("avatar stored but profile document sync failed")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
