package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup against an unknown group slug, username or
// post id. Handlers translate it to a 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden marks a mutation by an authenticated user who does not own
// the target (editing someone else's post).
var ErrForbidden = errors.New("forbidden")

// NotFound wraps ErrNotFound with the entity that was missed.
func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// ValidationError carries a per-field message so forms can re-render with
// the error attached to the offending field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
