// Package errs provides the unified error type used across dbmcp.
//
// Every subsystem (database, metadata, schema, format, filestore) wraps its
// native errors into *errs.Error before returning them to callers. The tool
// layer turns whatever comes back into a single failure with Failed, so the
// caller always sees "Failed to <operation>: <cause>".
//
// Usage:
//
//	// In a driver, wrap native errors:
//	return errs.Wrap(errs.ErrKindConnectionFailed, "ping failed", err)
//
//	// At the tool boundary:
//	return errs.Failed("describe_table", err)
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing driver-specific codes.
type ErrKind int

const (
	ErrKindUnknown             ErrKind = iota
	ErrKindNotFound                    // no rows, no object, no bucket
	ErrKindConnectionFailed            // cannot reach or authenticate to the backend
	ErrKindTimeout                     // context deadline / cancellation
	ErrKindQueryFailed                 // SQL execution error
	ErrKindInvalidInput                // bad arguments from the caller
	ErrKindPermissionDenied            // access denied
	ErrKindMetadataFailed              // catalog / table / column / key lookup error
	ErrKindSerializationFailed         // result could not be encoded
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindQueryFailed:
		return "query_failed"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindPermissionDenied:
		return "permission_denied"
	case ErrKindMetadataFailed:
		return "metadata_failed"
	case ErrKindSerializationFailed:
		return "serialization_failed"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all dbmcp subsystems.
// Op is only set at the tool boundary, see Failed.
type Error struct {
	Kind    ErrKind
	Op      string
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Op != "" {
		if e.Cause == nil {
			return fmt.Sprintf("Failed to %s: %s", e.Op, e.Message)
		}
		return fmt.Sprintf("Failed to %s: %s", e.Op, plain(e.Cause))
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// plain renders err without kind tags, for messages shown to tool callers.
func plain(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + plain(e.Cause)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// Failed wraps err as the failure of the named tool operation. The kind is
// inherited from err so callers can still branch on it. Returns nil for a nil err.
func Failed(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Op: op, Message: "Failed to " + op, Cause: err}
}

// --- Predicates ---

// IsNotFound reports whether err represents a "not found" result.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsQueryFailed reports whether err is a SQL execution failure.
func IsQueryFailed(err error) bool {
	return KindOf(err) == ErrKindQueryFailed
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// IsMetadataFailed reports whether err came from a metadata lookup.
func IsMetadataFailed(err error) bool {
	return KindOf(err) == ErrKindMetadataFailed
}

// IsSerializationFailed reports whether err came from encoding a result.
func IsSerializationFailed(err error) bool {
	return KindOf(err) == ErrKindSerializationFailed
}

// KindOf extracts the ErrKind of the outermost *Error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
