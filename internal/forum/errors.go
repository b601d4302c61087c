package forum

import (
	"errors"
	"fmt"

	"github.com/VitaminP8/dsaboard/internal/model"
)

// Error kinds. Every error the service returns for a caller mistake wraps one
// of them; anything else is an internal failure.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)

// Error carries the message shown to the client next to its kind.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func fail(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func failWith(kind error, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// notFoundOr turns a storage ErrNotFound into a client error and wraps anything
// else as internal.
func notFoundOr(err error, msg, action string) error {
	if errors.Is(err, model.ErrNotFound) {
		return failWith(ErrNotFound, msg, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
