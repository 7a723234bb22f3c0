// Package errs defines the error taxonomy shared by the jsonpointer and
// jsonpatch packages. It exists as its own leaf package so that the pointer
// resolver and the operation applier can report errors the root jsonpatch
// package understands without importing the root package back (which would
// create an import cycle, since the root package applies operations by
// calling into the resolver).
package errs

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories a patch application can fail
// with. It intentionally has no "unknown"/zero-value member that means
// anything other than InvalidPatchFormat, so a Kind is always meaningful.
type Kind int

const (
	InvalidPatchFormat Kind = iota
	UnknownOperation
	MissingPatchField
	InvalidPointer
	NonexistentValue
	IndexError
	IndexOutOfBounds
	CannotRemoveRoot
	InvalidMove
	TestFailed
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case InvalidPatchFormat:
		return "InvalidPatchFormat"
	case UnknownOperation:
		return "UnknownOperation"
	case MissingPatchField:
		return "MissingPatchField"
	case InvalidPointer:
		return "InvalidPointer"
	case NonexistentValue:
		return "NonexistentValue"
	case IndexError:
		return "IndexError"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case CannotRemoveRoot:
		return "CannotRemoveRoot"
	case InvalidMove:
		return "InvalidMove"
	case TestFailed:
		return "TestFailed"
	case TypeMismatch:
		return "TypeMismatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors, one per Kind, so callers can use errors.Is(err,
// errs.ErrNonexistentValue) without caring about an *Error's extra context.
var (
	ErrInvalidPatchFormat = errors.New("invalid patch format")
	ErrUnknownOperation   = errors.New("unknown patch operation")
	ErrMissingPatchField  = errors.New("missing required patch field")
	ErrInvalidPointer     = errors.New("invalid JSON pointer")
	ErrNonexistentValue   = errors.New("value does not exist at pointer")
	ErrIndexError         = errors.New("invalid array index token")
	ErrIndexOutOfBounds   = errors.New("array index out of bounds")
	ErrCannotRemoveRoot   = errors.New("cannot remove the document root")
	ErrInvalidMove        = errors.New("move source is a prefix of its destination")
	ErrTestFailed         = errors.New("test failed: value does not match")
	ErrTypeMismatch       = errors.New("pointer traverses a scalar value")
)

var sentinelByKind = map[Kind]error{
	InvalidPatchFormat: ErrInvalidPatchFormat,
	UnknownOperation:   ErrUnknownOperation,
	MissingPatchField:  ErrMissingPatchField,
	InvalidPointer:     ErrInvalidPointer,
	NonexistentValue:   ErrNonexistentValue,
	IndexError:         ErrIndexError,
	IndexOutOfBounds:   ErrIndexOutOfBounds,
	CannotRemoveRoot:   ErrCannotRemoveRoot,
	InvalidMove:        ErrInvalidMove,
	TestFailed:         ErrTestFailed,
	TypeMismatch:       ErrTypeMismatch,
}

// Error is the single typed error variant every failure in this module
// surfaces as. Op and Field are set only where the failing context makes
// them meaningful (per spec, MissingPatchField carries op/index/field).
type Error struct {
	Kind  Kind
	Op    string // patch operation name ("add", "move", ...), empty if n/a
	Index int    // index of the failing operation within the patch, -1 if n/a
	Field string // field name, for MissingPatchField
	Path  string // pointer path involved, empty if n/a

	err error // wrapped sentinel or underlying cause
}

// New builds an *Error for kind, wrapping its sentinel error.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Index: -1, err: sentinelByKind[kind]}
}

// Newf builds an *Error for kind with additional context appended to its
// message via fmt.Errorf wrapping (teacher-style %w wrapping, not a
// third-party error-stacking library).
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Index: -1,
		err:   fmt.Errorf("%w: "+format, append([]any{sentinelByKind[kind]}, args...)...),
	}
}

// WithPath sets the pointer path that the error occurred at.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithOp sets the patch operation name and its index within the patch.
func (e *Error) WithOp(op string, index int) *Error {
	e.Op = op
	e.Index = index
	return e
}

// WithField sets the field name for a MissingPatchField error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func (e *Error) Error() string {
	msg := e.err.Error()
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("patch operation %q (index %d) at %q: %s", e.Op, e.Index, e.Path, msg)
	case e.Op != "":
		return fmt.Sprintf("patch operation %q (index %d): %s", e.Op, e.Index, msg)
	case e.Path != "":
		return fmt.Sprintf("%q: %s", e.Path, msg)
	default:
		return msg
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel for e's Kind, so that
// errors.Is(err, errs.ErrNonexistentValue) keeps working regardless of how
// much context has been attached via With*.
func (e *Error) Is(target error) bool {
	return target == sentinelByKind[e.Kind]
}

// As extracts the first *Error in err's chain, mirroring the errors.As
// contract without requiring callers to know this package's internals.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err carries the given Kind, either as an *Error in
// its chain or as that Kind's bare sentinel.
func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return errors.Is(err, sentinelByKind[kind])
}
