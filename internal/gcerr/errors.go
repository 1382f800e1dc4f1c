package gcerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories raised by ghostcomment.
// The core engine only raises KindConfig and KindFile; the remaining
// kinds belong to the git/posting layers and must pass through the core
// untouched when they cross it.
type Kind string

const (
	KindConfig  Kind = "CONFIG_ERROR"
	KindFile    Kind = "FILE_ERROR"
	KindGit     Kind = "GIT_ERROR"
	KindAuth    Kind = "AUTH_ERROR"
	KindNetwork Kind = "NETWORK_ERROR"
	KindAPI     Kind = "API_ERROR"
)

// Error is a tagged error. Call sites switch on Kind, never on dynamic
// type tests against underlying causes.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a tagged error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags cause with kind, preserving it for errors.Is/As diagnostics.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or "" when err carries no tag anywhere
// in its chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is tagged with kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
