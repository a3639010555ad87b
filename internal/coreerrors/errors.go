// Package coreerrors defines the envelope core's error taxonomy: a small
// set of Kind values, each wrapping an underlying cause, with an optional
// redaction rule for causes that might carry payload content.
package coreerrors

import (
	"errors"
	"fmt"
)

// Kind identifies which of the core's failure modes produced an Error.
type Kind int

const (
	// KindMissingMapping means no publisher/subscriber mapping exists
	// for a type.
	KindMissingMapping Kind = iota
	// KindInvalidData means envelope JSON was malformed, a required
	// field was missing, a timestamp was unparseable, or a type was
	// unresolvable.
	KindInvalidData
	// KindSerializeFailed means the writer, codec, or a callback failed
	// during serialize.
	KindSerializeFailed
	// KindConvertFailed means the outer/inner parse, codec, or a
	// callback failed during convert-to-envelope.
	KindConvertFailed
	// KindNullMessage means an envelope's message was absent at
	// serialize time.
	KindNullMessage
)

func (k Kind) String() string {
	switch k {
	case KindMissingMapping:
		return "missing-mapping"
	case KindInvalidData:
		return "invalid-data"
	case KindSerializeFailed:
		return "serialize-failed"
	case KindConvertFailed:
		return "convert-failed"
	case KindNullMessage:
		return "null-message"
	default:
		return "unknown"
	}
}

// jsonCause marks an error as one produced by parsing/decoding JSON, so
// Wrap can redact it when content logging is disabled.
type jsonCause struct{ error }

// MarkJSONCause wraps err so Wrap knows to drop it when
// log-message-content is false.
func MarkJSONCause(err error) error {
	if err == nil {
		return nil
	}
	return jsonCause{err}
}

// Error is a Kind-tagged wrapped error. Its cause chain is preserved
// unless the kind's cause was marked as a JSON-parse cause and content
// logging is disabled, in which case the cause is dropped from the
// message but the Kind remains inspectable via errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, letting
// callers write errors.Is(err, coreerrors.New(coreerrors.KindInvalidData, "")).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a bare Error with no cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around cause. When logMessageContent is false and
// cause was marked via MarkJSONCause (directly or anywhere in its chain),
// the cause is dropped to avoid leaking payload fragments into logs.
func Wrap(kind Kind, message string, cause error, logMessageContent bool) *Error {
	if cause != nil && !logMessageContent {
		var marked jsonCause
		if errors.As(cause, &marked) {
			return &Error{Kind: kind, Message: message}
		}
	}
	return &Error{Kind: kind, Message: message, Cause: unwrapMark(cause)}
}

// unwrapMark strips the jsonCause marker so a preserved cause chain
// exposes the original error type to errors.As, not the marker wrapper.
func unwrapMark(err error) error {
	var marked jsonCause
	if errors.As(err, &marked) {
		return marked.error
	}
	return err
}
