package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies an error for HTTP mapping
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Auth
	Conflict
	InsufficientStock
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause; Message is what the client sees, Err is for logs
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Internal for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StatusCode maps an error to its HTTP status
func StatusCode(err error) int {
	switch KindOf(err) {
	case Validation, InsufficientStock:
		return 400
	case Auth:
		return 401
	case NotFound:
		return 404
	case Conflict:
		return 409
	default:
		return 500
	}
}

// Message returns the client-facing message. Unclassified errors are
// genericized so store internals never leak into a response body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}

// FromDB classifies a store-layer error: missing rows become NotFound with
// the given message, everything else is Internal.
func FromDB(err error, notFoundMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(NotFound, notFoundMsg)
	}
	return Wrap(Internal, "Something went wrong", err)
}
