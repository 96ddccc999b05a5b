package forecast

import (
	"errors"
	"fmt"
)

// ErrMalformedEntry is matched by every error raised for an entry whose
// timestamp is missing or cannot be parsed.
var ErrMalformedEntry = errors.New("malformed forecast entry")

// MalformedEntryError describes which entry could not be flattened.
type MalformedEntryError struct {
	Index     int    // position in the feed, -1 when flattened standalone
	ValidTime string // raw timestamp field
	Err       error
}

func (e *MalformedEntryError) Error() string {
	if e.ValidTime == "" {
		return fmt.Sprintf("%v at index %d: missing validTime", ErrMalformedEntry, e.Index)
	}
	return fmt.Sprintf("%v at index %d: validTime %q: %v", ErrMalformedEntry, e.Index, e.ValidTime, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// Is reports ErrMalformedEntry as a match.
func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}
