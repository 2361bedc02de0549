package avatar

import (
	"encoding/base64"
	"fmt"
)

// EncodePreview converts a validated candidate into a base64 data URI that is
// directly usable as a display source with no further decoding step. The
// result is owned by the editing session and is never persisted; opening a
// newer session supersedes any prior preview.
func EncodePreview(c CandidateImage) (string, error) {
	if len(c.Data) == 0 {
		return "", ErrUnreadableImage
	}
	contentType := normalizeContentType(c.ContentType)
	if contentType == "" {
		return "", ErrUnreadableImage
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType,
		base64.StdEncoding.EncodeToString(c.Data)), nil
}
