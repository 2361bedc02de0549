package avatar

// validFormats is the closed set of accepted avatar MIME types.
var validFormats = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// AllowedFormat reports whether the MIME type is an accepted avatar format.
func AllowedFormat(contentType string) bool {
	_, ok := validFormats[normalizeContentType(contentType)]
	return ok
}

// Validate enforces the format and size acceptance policy on a candidate
// before any further processing. Pure function of the metadata; it runs at
// session open and again before upload, since the candidate may have been
// swapped during a long-lived editing session.
//
// A size of exactly MaxFileBytes passes; one byte more fails.
func Validate(contentType string, size int64) error {
	if !AllowedFormat(contentType) {
		return ErrInvalidFormat
	}
	if size > MaxFileBytes {
		return ErrFileTooLarge
	}
	return nil
}
