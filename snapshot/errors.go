package snapshot

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsnapshottableError reports a value that is neither null, scalar,
// sequence, collection nor mapping, and that no OpaqueDigester could digest.
// It fails the whole snapshot: no partial or placeholder node is produced.
type UnsnapshottableError struct {
	Type string
	Err  error
}

func (e *UnsnapshottableError) Error() string {
	return fmt.Sprintf("value of type %s cannot be snapshotted: %v", e.Type, e.Err)
}

func (e *UnsnapshottableError) Unwrap() error {
	return e.Err
}

// IsUnsnapshottable reports whether err, or the error it wraps, is an
// *UnsnapshottableError.
func IsUnsnapshottable(err error) bool {
	_, ok := errors.Cause(err).(*UnsnapshottableError)
	return ok
}

// wrapf adds the position of a failing child to err, keeping the
// *UnsnapshottableError reachable through errors.Cause.
func wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
