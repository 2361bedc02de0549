package profile

import (
	"github.com/janisto/avatar-service/internal/platform/timeutil"
)

// Profile represents a user profile response.
type Profile struct {
	UID         string        `json:"uid"         doc:"Unique identifier"         example:"user-123"`
	Email       string        `json:"email"       doc:"Email address"             example:"john@example.com"`
	DisplayName string        `json:"displayName" doc:"Display name"              example:"john_doe"`
	PhotoURL    string        `json:"photoURL"    doc:"Avatar URL, empty if none" example:"https://res.cloudinary.com/demo/image/upload/abc.jpg"`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Creation timestamp"        example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt   timeutil.Time `json:"updatedAt"   doc:"Last update timestamp"     example:"2024-01-15T10:30:00.000Z"`
}
