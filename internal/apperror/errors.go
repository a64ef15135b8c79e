// Package apperror defines the classified failures raised by every layer of
// the backend. Services and repositories return *Error values; the HTTP
// boundary maps the Kind to a status code and the Message to the response
// body. Anything that is not already an *Error is treated as an unexpected
// persistence failure and wrapped once by Normalize.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names one of the five failure categories.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindDatabase       Kind = "DATABASE_ERROR"
)

// databaseMessage is what clients see for any DATABASE_ERROR.
const databaseMessage = "A database error occurred"

// Error is a classified application error. Err carries the underlying cause
// for server-side diagnostics and is never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// MissingFields reports every required field that was absent, in the order
// given, rather than stopping at the first one.
func MissingFields(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Database wraps an unexpected persistence failure. The user-facing message
// is generic; the cause stays in Err.
func Database(cause error) *Error {
	return &Error{Kind: KindDatabase, Message: databaseMessage, Err: cause}
}

// Normalize leaves classified errors untouched and wraps everything else as a
// DATABASE_ERROR. A nil error stays nil.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Database(err)
}

// KindOf returns the classification of err, or KindDatabase for anything
// unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDatabase
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// PublicMessage returns the text that may be shown to an API client.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindDatabase {
		return databaseMessage
	}
	return appErr.Message
}
