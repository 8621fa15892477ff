package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindInvalidParameters Kind = iota + 1 // required request field missing or empty
	KindMalformedEndpoint                 // request URL could not be built
	KindTransport                         // network or HTTP level failure
	KindDecode                            // body did not match the expected shape
)

func (k Kind) String() string {
	switch k {
	case KindInvalidParameters:
		return "invalid parameters"
	case KindMalformedEndpoint:
		return "malformed endpoint"
	case KindTransport:
		return "transport failure"
	case KindDecode:
		return "decode failure"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrMalformedEndpoint = errors.New("malformed endpoint")
	ErrTransport         = errors.New("transport failure")
	ErrDecode            = errors.New("decode failure")
)

// Error is the only error type returned by Fetch.
type Error struct {
	Kind Kind
	Op   string // "trivia" or "images"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, so errors.Is(err, ErrDecode) works
// without losing the wrapped cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidParameters:
		return e.Kind == KindInvalidParameters
	case ErrMalformedEndpoint:
		return e.Kind == KindMalformedEndpoint
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	default:
		return false
	}
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
