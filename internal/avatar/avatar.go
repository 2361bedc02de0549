// Package avatar implements the avatar capture pipeline's leaf stages:
// candidate validation, preview encoding, transform state and the compositor
// producing the fixed-size rendered avatar.
package avatar

import (
	"errors"
	"strings"
)

// Pipeline errors. Validation errors are recoverable (the caller may pick a
// different file); render errors abort the current save attempt.
var (
	// ErrInvalidFormat rejects anything other than JPG, PNG or WEBP.
	ErrInvalidFormat = errors.New("invalid format: please upload JPG, PNG, or WEBP image")

	// ErrFileTooLarge rejects candidates above MaxFileBytes.
	ErrFileTooLarge = errors.New("file size too large: maximum 5MB allowed")

	// ErrUnreadableImage indicates the candidate bytes could not be read or decoded.
	ErrUnreadableImage = errors.New("failed to read image")

	// ErrRenderUnavailable indicates the drawing surface or source image was
	// gone at render time (e.g. the editing session was torn down mid-render).
	ErrRenderUnavailable = errors.New("rendering surface not available")
)

// MaxFileBytes is the candidate size ceiling (5 MiB inclusive).
const MaxFileBytes = 5 * 1024 * 1024

// CandidateImage is a user-selected image awaiting validation. Transient:
// it lives only inside one editing session.
type CandidateImage struct {
	Data        []byte
	ContentType string
}

// Validate applies the acceptance policy to the candidate's metadata.
func (c CandidateImage) Validate() error {
	return Validate(c.ContentType, int64(len(c.Data)))
}

// normalizeContentType lowercases a MIME type and strips parameters.
func normalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
