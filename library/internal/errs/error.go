package errs

import (
	"strings"

	"github.com/pkg/errors"
)

// Kinds of domain failures. *Error unwraps to one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation conflict")
	ErrBusinessRule = errors.New("business rule violation")
	ErrPersistence  = errors.New("persistence failure")
)

// Raised by stores.
var (
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrConflict       = errors.New("unique constraint violated")
)

// Error is a client visible failure: a kind plus one or more messages.
type Error struct {
	Kind     error
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, " ")
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Payload is a single message when there is one, the whole list otherwise.
func (e *Error) Payload() any {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return e.Messages
}

func newError(kind error, msgs ...string) *Error {
	return &Error{Kind: kind, Messages: msgs}
}

func NotFound(msg string) error {
	return newError(ErrNotFound, msg)
}

func Validation(msgs ...string) error {
	return newError(ErrValidation, msgs...)
}

func BusinessRule(msg string) error {
	return newError(ErrBusinessRule, msg)
}

func Persistence(msg string) error {
	return newError(ErrPersistence, msg)
}

// AsError reports whether err carries a domain failure.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
