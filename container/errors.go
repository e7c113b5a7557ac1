package container

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the failure modes a Container/Containerizer operation
// can report. Per the side-channel hygiene policy this package follows,
// an underlying cause (an engine error, a cursor bounds failure) is never
// exposed through Kind — only one of these three is ever observed by a
// caller doing errors.Is.
type Kind int

const (
	// Unaligned: the input buffer passed to ParseAndVerify does not begin
	// on a 4-byte boundary.
	Unaligned Kind = iota + 1
	// OutOfRange: any length/bounds/field-decode failure, including a
	// missing builder prerequisite, field overflow, unknown magic number,
	// or an underlying buffer-exhausted condition from the cursor.
	OutOfRange
	// SignatureFailure: signature verification or signing reported any
	// error. All such engine errors collapse to this single Kind so that
	// unverified inputs cannot be distinguished by cause.
	SignatureFailure
)

func (k Kind) String() string {
	switch k {
	case Unaligned:
		return "unaligned"
	case OutOfRange:
		return "out of range"
	case SignatureFailure:
		return "signature failure"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every fallible operation in this
// package. Its Kind is stable and intended for errors.Is comparisons
// against the exported sentinels below; its wrapped cause (if any) is for
// diagnostics only and is intentionally not reachable via errors.Is.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("container: %s: %v", e.msg, e.cause)
	}
	return fmt.Sprintf("container: %s", e.msg)
}

// Unwrap exposes the wrapped cause to errors.As/fmt.Errorf("%w", ...)
// callers who want to inspect diagnostic detail; it is not used by
// errors.Is comparisons against this package's sentinels, which instead
// go through Is below.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is one of this package's sentinel *Error
// values with a matching Kind, letting callers write
// errors.Is(err, container.ErrSignatureFailure) without caring about the
// wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for the three Kinds. Compare against these with
// errors.Is.
var (
	ErrUnaligned        = &Error{Kind: Unaligned, msg: "input buffer is not 4-byte aligned"}
	ErrOutOfRange       = &Error{Kind: OutOfRange, msg: "value out of range"}
	ErrSignatureFailure = &Error{Kind: SignatureFailure, msg: "signature check failed"}
)

// newError builds a Kind-tagged error with a specific message, optionally
// wrapping cause for diagnostics.
func newError(kind Kind, msg string, cause error) *Error {
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrap(cause, msg)
	}
	return &Error{Kind: kind, msg: msg, cause: wrapped}
}
