package extract

import (
	"errors"
	"fmt"

	"github.com/vearutop/spatial/internal/assets"
)

var (
	// ErrNotFound is reported for a file item whose path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNotReadable is reported for a file item that cannot be opened for reading.
	ErrNotReadable = errors.New("file not readable")
	// ErrUnauthorized marks a library run refused by its asset source.
	ErrUnauthorized = errors.New("library access not authorized")
)

// UsageError reports misuse of the input mode selection.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return "usage: " + e.Msg }

// AuthorizationError reports an asset source that is not fully authorized.
type AuthorizationError struct {
	Status assets.Status
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%v: status %s", ErrUnauthorized, e.Status)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }

// CheckMode validates that exactly one input mode is selected.
func CheckMode(library bool, files []string) error {
	switch {
	case library && len(files) > 0:
		return &UsageError{Msg: "--photos-library and --files are mutually exclusive"}
	case !library && len(files) == 0:
		return &UsageError{Msg: "one of --photos-library or --files is required"}
	}
	return nil
}
