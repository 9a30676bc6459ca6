package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation_error"
	KindProvider   ErrorKind = "provider_error"
	KindParse      ErrorKind = "parse_error"
	KindStub       ErrorKind = "stub_error"
	KindInternal   ErrorKind = "internal_error"
)

// Error is returned by every orchestration call that fails. Message is safe
// to show to API callers; Err keeps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
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

// KindOf reports the kind of err, or KindInternal when err carries none.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func providerError(message string, err error) *Error {
	return &Error{Kind: KindProvider, Message: message, Err: err}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}
