package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind distinguishes the transport failure modes.
type Kind int

const (
	// KindStatus is a response with status >= 400.
	KindStatus Kind = iota + 1

	// KindTimeout is a request or body read that exceeded the timeout.
	KindTimeout

	// KindConnection is any other network failure.
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// Error is a fatal transport failure. It is never retried.
type Error struct {
	Kind Kind

	// StatusCode and Body are set for KindStatus.
	StatusCode int
	Body       string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
	case KindTimeout:
		return fmt.Sprintf("request timeout: %v", e.Err)
	default:
		return fmt.Sprintf("connection error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the transport error in err's chain.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// wrap classifies a network error. Cancellation by the caller is returned as
// is.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnection, Err: err}
}
