package avatar

import (
	"github.com/janisto/avatar-service/internal/platform/timeutil"
	"github.com/janisto/avatar-service/internal/service/avatarsession"
)

// EditSession represents an avatar editing session response.
type EditSession struct {
	SessionID       string        `json:"sessionId"       doc:"Editing session identifier"            example:"7b68a834-3b64-43ed-9aab-37b63b54f201"`
	Preview         string        `json:"preview"         doc:"Inline preview of the source image (data URI)"`
	ContentType     string        `json:"contentType"     doc:"MIME type of the source image"          example:"image/jpeg"`
	Size            int64         `json:"size"            doc:"Source image size in bytes"             example:"204800"`
	ZoomPercent     int           `json:"zoomPercent"     doc:"Current zoom level"                     example:"100"`
	RotationDegrees int           `json:"rotationDegrees" doc:"Accumulated rotation in degrees"        example:"-90"`
	CreatedAt       timeutil.Time `json:"createdAt"       doc:"Session creation timestamp"             example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt       timeutil.Time `json:"updatedAt"       doc:"Last adjustment timestamp"              example:"2024-01-15T10:30:00.000Z"`
}

// SavedAvatar represents the outcome of a successful save.
type SavedAvatar struct {
	PhotoURL string `json:"photoURL" doc:"Stored avatar URL"           example:"https://res.cloudinary.com/demo/image/upload/abc.jpg"`
	PublicID string `json:"publicId" doc:"Storage provider identifier" example:"profile-avatars/abc"`
}

func toHTTPSession(s *avatarsession.Session) EditSession {
	return EditSession{
		SessionID:       s.ID,
		Preview:         s.Preview,
		ContentType:     s.ContentType,
		Size:            s.Size,
		ZoomPercent:     s.Transform.ZoomPercent,
		RotationDegrees: s.Transform.RotationDegrees,
		CreatedAt:       timeutil.Time{Time: s.CreatedAt},
		UpdatedAt:       timeutil.Time{Time: s.UpdatedAt},
	}
}
