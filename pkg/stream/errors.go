package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPayload is returned when a text stream ended without any event
	// carrying media.
	ErrNoPayload = errors.New("no video data found")

	// ErrEmptyResponse is returned when the response body held no bytes.
	ErrEmptyResponse = errors.New("empty response received")
)

// FormatError reports a stream that was read to the end but produced no
// payload. It is distinct from transport failures: the server answered, the
// answer was unusable.
type FormatError struct {
	Format Classification
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s stream: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
