package profile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidUsername is wrapped by all username validation failures.
var ErrInvalidUsername = errors.New("invalid username")

var (
	usernameRe      = regexp.MustCompile(`^[a-z0-9_]+$`)
	usernameStripRe = regexp.MustCompile(`[^a-z0-9_]`)
)

// UsernameFromEmail derives a default display name from the email's local
// part: lowercased with everything outside [a-z0-9_] removed.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return usernameStripRe.ReplaceAllString(strings.ToLower(local), "")
}

// ValidateUsername enforces the username policy: 3-30 characters from
// [a-z0-9_].
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidUsername)
	case len(username) < 3:
		return fmt.Errorf("%w: must be at least 3 characters", ErrInvalidUsername)
	case len(username) > 30:
		return fmt.Errorf("%w: must be at most 30 characters", ErrInvalidUsername)
	case !usernameRe.MatchString(username):
		return fmt.Errorf("%w: only lowercase letters, numbers, and underscores", ErrInvalidUsername)
	}
	return nil
}
