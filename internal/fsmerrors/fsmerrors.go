// Package fsmerrors holds the error taxonomy shared by every automaton
// package in this module: construction errors (fatal, diagnostic), an
// operational sentinel for resource exhaustion, and a contract-violation
// kind for programmer-logic misuse.
package fsmerrors

import "fmt"

// Kind identifies the category of a ConstructionError.
type Kind int

const (
	DuplicateState Kind = iota
	NoSuchState
	NoSuchSymbol
	MalformedSymbol
	MalformedRegex
	LL1Conflict
	UnbalancedClass
	EmptyRange
)

func (k Kind) String() string {
	switch k {
	case DuplicateState:
		return "duplicate state"
	case NoSuchState:
		return "nonexistent state"
	case NoSuchSymbol:
		return "nonexistent letter"
	case MalformedSymbol:
		return "malformed letter"
	case MalformedRegex:
		return "malformed regex"
	case LL1Conflict:
		return "LL(1) conflict"
	case UnbalancedClass:
		return "unbalanced character class"
	case EmptyRange:
		return "empty character range"
	default:
		return "unknown construction error"
	}
}

// ConstructionError is returned when building an automaton, grammar, or
// regex fails because of a structural problem with the description given to
// it. It is always fatal to the construction in progress; the object being
// built is left in its zero/unmodified state.
type ConstructionError struct {
	Kind   Kind
	Msg    string
	Entity []string // the offending entity or entities, named
}

func (e *ConstructionError) Error() string {
	if len(e.Entity) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Msg, e.Entity)
}

// NewConstructionError creates a ConstructionError naming the given
// offending entities.
func NewConstructionError(kind Kind, msg string, entity ...string) *ConstructionError {
	return &ConstructionError{Kind: kind, Msg: msg, Entity: entity}
}

// Sentinel operational errors. Use errors.Is against these, not type
// assertion, since OperationalError wraps one of these as its cause.
var (
	// ErrSearchLimitExceeded is returned by the PDA configuration search
	// when the configurable exploration bound is hit before the search
	// concludes naturally. It is distinct from a rejecting run: the answer
	// is genuinely unknown, not "no". The LL(1) predictive parser has no
	// exploration bound and never returns it.
	ErrSearchLimitExceeded = fmt.Errorf("search limit exceeded")
)

// OperationalError wraps a sentinel failure (currently only resource
// exhaustion) with context about where it happened.
type OperationalError struct {
	Msg   string
	Cause error
}

func (e *OperationalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Cause)
}

func (e *OperationalError) Unwrap() error {
	return e.Cause
}

// NewSearchLimitError builds an OperationalError wrapping
// ErrSearchLimitExceeded with msg as additional context.
func NewSearchLimitError(msg string) *OperationalError {
	return &OperationalError{Msg: msg, Cause: ErrSearchLimitExceeded}
}

// ContractViolation marks a programmer-logic misuse: a wrong-arity key into
// a tuple map, simulating an automaton whose start state was never set, and
// similar. These are not expected to occur in correct calling code and are
// raised via panic rather than returned, so that callers who never misuse
// the contract never need to check for them; the recover-based wrappers in
// cmd/fsmctl and server/api catch them uniformly alongside any other panic.
type ContractViolation struct {
	Msg string
}

func (e ContractViolation) Error() string {
	return e.Msg
}

// Violate panics with a ContractViolation carrying msg.
func Violate(msg string) {
	panic(ContractViolation{Msg: msg})
}

// Violatef is like Violate but accepts a format string.
func Violatef(format string, args ...interface{}) {
	panic(ContractViolation{Msg: fmt.Sprintf(format, args...)})
}
