// Package apperr defines the error kinds a run can fail with and maps them
// to process exit codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the category of an error.
type Kind string

const (
	KindConfiguration  Kind = "CONFIGURATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindTransport      Kind = "TRANSPORT"
)

// Error is a categorized error with an optional underlying cause.
type Error struct {
	Kind       Kind
	Message    string
	Err        error
	Suggestion string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// WithSuggestion returns a copy of e carrying a hint for the operator.
func (e *Error) WithSuggestion(suggestion string) *Error {
	return &Error{
		Kind:       e.Kind,
		Message:    e.Message,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// Sentinels for errors.Is.
var (
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrTransport      = &Error{Kind: KindTransport}
)

// New creates an error of the given kind.
func New(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Configuration reports a missing or invalid input.
func Configuration(msg string) *Error {
	return New(KindConfiguration, msg, nil)
}

// Authentication reports an absent or rejected credential.
func Authentication(msg string, err error) *Error {
	return New(KindAuthentication, msg, err)
}

// NotFound reports that the remote API has no such entity.
func NotFound(msg string, err error) *Error {
	return New(KindNotFound, msg, err)
}

// Transport reports a call that succeeded at the transport level but
// returned no usable payload.
func Transport(msg string, err error) *Error {
	return New(KindTransport, msg, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// SuggestionOf returns the first suggestion found in err's chain.
func SuggestionOf(err error) string {
	for err != nil {
		if appErr, ok := err.(*Error); ok && appErr.Suggestion != "" {
			return appErr.Suggestion
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfiguration:
		return 2
	case KindAuthentication:
		return 3
	case KindNotFound:
		return 4
	case KindTransport:
		return 5
	default:
		return 1
	}
}
