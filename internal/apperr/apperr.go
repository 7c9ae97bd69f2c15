// Package apperr is the error taxonomy every operation raises at its
// boundary: precondition failures before any I/O, normalized storage
// failures with the cause kept for logging, and conflicts for lock
// contention. Not-found is never an error; callers get an empty result.
package apperr

import (
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/fahari-app/inventory-service/pkg/i18n"
)

type Kind int

const (
	KindPrecondition Kind = iota + 1
	KindStorage
	KindConflict
)

type Error struct {
	kind      Kind
	messageID string
	msg       string
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// UserMessage is the localized text safe to show a caller. The cause of
// a storage error is never exposed here.
func (e *Error) UserMessage(lang string) string {
	if e.messageID != "" {
		return i18n.T(lang, e.messageID)
	}
	return e.msg
}

// Precondition reports a caller error detected before any I/O was
// issued. The message is developer-facing and returned verbatim.
func Precondition(msg string) error {
	return &Error{kind: KindPrecondition, msg: msg}
}

// Storage normalizes a storage-collaborator failure. The cause keeps
// its stack for logging; callers only ever see the generic message.
func Storage(cause error) error {
	return &Error{
		kind:      KindStorage,
		messageID: i18n.MsgSomethingWentWrong,
		msg:       "storage operation failed",
		cause:     errors.WithStack(cause),
	}
}

// Conflict reports contention, such as a modification lock that could
// not be acquired.
func Conflict(messageID string) error {
	return &Error{kind: KindConflict, messageID: messageID, msg: "operation conflict"}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind == kind
	}
	return false
}

func IsPrecondition(err error) bool { return IsKind(err, KindPrecondition) }
func IsStorage(err error) bool      { return IsKind(err, KindStorage) }
func IsConflict(err error) bool     { return IsKind(err, KindConflict) }
