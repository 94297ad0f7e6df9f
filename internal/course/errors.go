package course

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord reports a record that was rejected at the fetch boundary
// or during catalog build.
type ErrInvalidRecord struct {
	Index  int
	ID     string
	Reason error
}

func (e *ErrInvalidRecord) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid record %d (%s): %v", e.Index, e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid record %d: %v", e.Index, e.Reason)
}

func (e *ErrInvalidRecord) Unwrap() error { return e.Reason }

// ErrMissingField indicates a required field was absent or empty.
var ErrMissingField = errors.New("missing required field")

func errMissing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func errUnknownState(s State) error {
	return fmt.Errorf("unknown state %q", string(s))
}
