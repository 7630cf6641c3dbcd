package settings

import (
	"errors"
	"fmt"
)

// MalformedConfigError reports a settings key whose value has the wrong
// shape, most commonly a list-typed key handed a single unsplit string.
type MalformedConfigError struct {
	// Key is the offending settings key.
	Key string

	// Reason describes what was wrong with the value.
	Reason string

	// Err is the underlying error, if any (e.g. a triple parse failure).
	Err error
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed setting %q: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed setting %q: %s", e.Key, e.Reason)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *MalformedConfigError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is. Any two
// MalformedConfigErrors match, so callers can test against a zero value.
func (e *MalformedConfigError) Is(target error) bool {
	_, ok := target.(*MalformedConfigError)
	return ok
}

// IsMalformedConfig reports whether err is (or wraps) a
// MalformedConfigError.
func IsMalformedConfig(err error) bool {
	var e *MalformedConfigError
	return errors.As(err, &e)
}
