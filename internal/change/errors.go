package change

import (
	"errors"
	"fmt"
)

// Sentinel errors for batch application.
var (
	// ErrUnsupportedChangeKind is returned when a change does not match any
	// operation the collection supports.
	ErrUnsupportedChangeKind = errors.New("unsupported change kind")

	// ErrMalformedChange is returned when a change lacks the payload its kind
	// requires (an add or replace without an item, a dimensions change
	// without a size).
	ErrMalformedChange = errors.New("malformed change")
)

// BatchError reports the change that aborted a batch
type BatchError struct {
	Index int
	Kind  Kind
	ID    string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("change %d (%s %q): %v", e.Index, e.Kind, e.ID, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
