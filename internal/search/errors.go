package search

import (
	"errors"
	"fmt"
)

// ErrEmptyQuestion is returned for empty or whitespace-only questions. No
// request is sent.
var ErrEmptyQuestion = errors.New("please enter a question")

// ServerError is a non-2xx response from the backend.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error: %d", e.Status)
}

// TransportError means no response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means a 2xx response carried a body that is not JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type FailureKind int

const (
	KindNone FailureKind = iota
	KindValidation
	KindServer
	KindTransport
	KindDecode
	KindUnknown
)

// Kind classifies an error returned by Search.
func Kind(err error) FailureKind {
	var (
		serverErr    *ServerError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyQuestion):
		return KindValidation
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}
