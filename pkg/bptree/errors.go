package bptree

import "fmt"

// ErrorKind enumerates the taxonomy of errors this package can return,
// modeled on turdb.IntegrityError's Type field: a small closed set of
// string-like kinds carried alongside a human-readable message.
type ErrorKind int

const (
	// ErrInvalidCapacity is returned by New/NewWithConfig when the
	// requested capacity is below the floor of 4.
	ErrInvalidCapacity ErrorKind = iota
	// ErrInvalidRange is returned by Range and RangeReverse when the low
	// bound is strictly greater than the high bound, or when both are
	// bounded on the same key and either one is Excluded. FromSorted also
	// returns it when its pairs are not in strictly ascending key order.
	ErrInvalidRange
	// ErrCorruptState is only ever produced by CheckInvariants; it is
	// never returned from a mutating operation during normal use.
	ErrCorruptState
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidCapacity:
		return "InvalidCapacity"
	case ErrInvalidRange:
		return "InvalidRange"
	case ErrCorruptState:
		return "CorruptState"
	default:
		return "Unknown"
	}
}

// TreeError is the concrete error type returned by this package's fallible
// operations. Node and Index are only populated for ErrCorruptState, where
// they locate the first violating node for the caller.
type TreeError struct {
	Kind    ErrorKind
	Message string

	// Node/Index locate the violation for ErrCorruptState diagnostics.
	// Node is -1 and Index is -1 when not applicable.
	Node  int
	Index int
}

func (e *TreeError) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("[%s] node %d (index %d): %s", e.Kind, e.Node, e.Index, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, message string) *TreeError {
	return &TreeError{Kind: kind, Message: message, Node: -1, Index: -1}
}

func newCorruptError(node, index int, message string) *TreeError {
	return &TreeError{Kind: ErrCorruptState, Message: message, Node: node, Index: index}
}
