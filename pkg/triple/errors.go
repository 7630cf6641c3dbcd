package triple

import (
	"errors"
	"fmt"
)

// InvalidTripleError reports a triple string that is structurally
// unparseable. Malformed-but-nonempty components never produce this error;
// they degrade to "unknown" fields instead.
type InvalidTripleError struct {
	// Raw is the input that failed to parse.
	Raw string

	// Reason describes the structural problem.
	Reason string
}

// Error implements the error interface.
func (e *InvalidTripleError) Error() string {
	return fmt.Sprintf("invalid host triple %q: %s", e.Raw, e.Reason)
}

// Is implements error matching for errors.Is. Any two InvalidTripleErrors
// match, so callers can test against a zero value.
func (e *InvalidTripleError) Is(target error) bool {
	_, ok := target.(*InvalidTripleError)
	return ok
}

// IsInvalidTriple reports whether err is (or wraps) an InvalidTripleError.
func IsInvalidTriple(err error) bool {
	var e *InvalidTripleError
	return errors.As(err, &e)
}
