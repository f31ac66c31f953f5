package apperrors

import (
	"errors"
	"fmt"
)

// Kind buckets every failure the API can surface. Handlers map a kind to an
// HTTP status in exactly one place (handlers/respond.go).
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields names the offending request fields, when that is known.
	Fields []string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code, message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func Auth(code, message string) *Error {
	return &Error{Kind: KindAuth, Code: code, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: message}
}

// Store wraps an unclassified persistence failure.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Code: "store_error", Message: "storage operation failed", Err: err}
}

// From pulls the typed error back out of a wrapped chain. The second return
// is false for plain errors that never went through this package.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
