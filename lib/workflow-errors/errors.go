package workflowerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindInvalidState     Kind = "INVALID_STATE"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindConflict         Kind = "CONFLICT"
	KindNotFound         Kind = "NOT_FOUND"
)

// Error is a recoverable workflow error. Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches by kind, so errors.Is(err, ErrConflict) works for any conflict.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "operation is not allowed"}
	ErrInvalidState     = &Error{Kind: KindInvalidState, Message: "invalid transition"}
	ErrValidationFailed = &Error{Kind: KindValidationFailed, Message: "validation failed"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "document state was changed concurrently"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
)

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) error {
	return New(KindUnauthorized, message)
}

func InvalidState(format string, args ...interface{}) error {
	return Newf(KindInvalidState, format, args...)
}

func ValidationFailed(message string) error {
	return New(KindValidationFailed, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

// KindOf returns the kind of a workflow error; ok is false for store and other internal errors.
func KindOf(err error) (kind Kind, ok bool) {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return wfErr.Kind, true
	}
	return "", false
}

// IsRetryable - only a lost race is safe to retry after re-reading the state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
