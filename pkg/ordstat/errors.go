// Package ordstat defines the error kinds shared by every layer of the
// order-statistic container stack.
package ordstat

import "fmt"

// Kind identifies why an operation failed.
type Kind int

const (
	// OutOfMemory means the host allocator refused a request. The tree is
	// left unchanged.
	OutOfMemory Kind = iota + 1
	// Arithmetic means a componentwise weight add/subtract overflowed or
	// underflowed while propagating a subtree sum. The tree is left
	// inconsistent.
	Arithmetic
	// InvalidHandle means a nil/sentinel handle was passed where a live
	// handle was required, or a range's iterators were mismatched.
	InvalidHandle
	// KeyAbsent means At/UpdateValue targeted a key not present in a map.
	KeyAbsent
	// OutOfRange means a positional access went beyond size().
	OutOfRange
	// InvariantViolated means Check found a structural or sum inconsistency.
	// Diagnostic only; the tree is not modified.
	InvariantViolated
	// Capacity means the compact allocator is at its index limit.
	Capacity
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "OutOfMemory"
	case Arithmetic:
		return "Arithmetic"
	case InvalidHandle:
		return "InvalidHandle"
	case KeyAbsent:
		return "KeyAbsent"
	case OutOfRange:
		return "OutOfRange"
	case InvariantViolated:
		return "InvariantViolated"
	case Capacity:
		return "Capacity"
	default:
		return "Unknown"
	}
}

// Error is the error type every operation in this module surfaces.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ordstat: %v: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("ordstat: %v", e.Kind)
}

// Unwrap lets [errors.Is]/[errors.As] see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, ordstat.ErrInvalidHandle) without extracting a Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind && other.Err == nil
}

// New constructs an *Error of the given kind wrapping cause (which may be
// nil).
func New(kind Kind, cause error) *Error { return &Error{Kind: kind, Err: cause} }

// Sentinel values for use with errors.Is, one per Kind, with no wrapped
// cause — small comparable sentinel values (like [untrust.ErrEndOfInput])
// rather than a bespoke comparison helper for each Kind.
var (
	ErrOutOfMemory       = New(OutOfMemory, nil)
	ErrArithmetic        = New(Arithmetic, nil)
	ErrInvalidHandle     = New(InvalidHandle, nil)
	ErrKeyAbsent         = New(KeyAbsent, nil)
	ErrOutOfRange        = New(OutOfRange, nil)
	ErrInvariantViolated = New(InvariantViolated, nil)
	ErrCapacity          = New(Capacity, nil)
)
