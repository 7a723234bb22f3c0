package jsonpatch

import "github.com/agentflare-ai/json6902/errs"

// ErrorKind and Error are re-exported from errs so callers of this package
// never need to import the leaf errs package directly; errs exists
// separately only to break the import cycle between this package and the
// internal packages that report these same errors (see errs.go).
type ErrorKind = errs.Kind

type Error = errs.Error

const (
	InvalidPatchFormat  = errs.InvalidPatchFormat
	UnknownOperation    = errs.UnknownOperation
	MissingPatchField   = errs.MissingPatchField
	InvalidPointer      = errs.InvalidPointer
	NonexistentValue    = errs.NonexistentValue
	IndexError          = errs.IndexError
	IndexOutOfBounds    = errs.IndexOutOfBounds
	CannotRemoveRoot    = errs.CannotRemoveRoot
	InvalidMove         = errs.InvalidMove
	TestFailed          = errs.TestFailed
	TypeMismatch        = errs.TypeMismatch
)

var (
	ErrInvalidPatchFormat = errs.ErrInvalidPatchFormat
	ErrUnknownOperation   = errs.ErrUnknownOperation
	ErrMissingPatchField  = errs.ErrMissingPatchField
	ErrInvalidPointer     = errs.ErrInvalidPointer
	ErrNonexistentValue   = errs.ErrNonexistentValue
	ErrIndexError         = errs.ErrIndexError
	ErrIndexOutOfBounds   = errs.ErrIndexOutOfBounds
	ErrCannotRemoveRoot   = errs.ErrCannotRemoveRoot
	ErrInvalidMove        = errs.ErrInvalidMove
	ErrTestFailed         = errs.ErrTestFailed
	ErrTypeMismatch       = errs.ErrTypeMismatch
)

// AsError extracts this module's structured *Error from err, if present.
func AsError(err error) (*Error, bool) {
	return errs.As(err)
}
