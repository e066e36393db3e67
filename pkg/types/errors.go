package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindSchema                ErrKind = iota // unknown/malformed document shape
	ErrKindNumber                               // numeric text malformed or out of range
	ErrKindBitmap                               // bitmap text outside {0,1,x}
	ErrKindVendorQuery                          // host introspection capability failed
	ErrKindVendorMismatch                       // template requires a different CPU vendor
	ErrKindCpuModel                             // host CPU generation too old for template
	ErrKindInvalidStaticTemplate                // legacy sentinel template name selected
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err (or any error it wraps) is an *Error of the
// given kind.
func IsKind(err error, kind ErrKind) bool {
	var typed *Error
	return errors.As(err, &typed) && typed.Kind == kind
}

// NewSchemaError reports a malformed or unrecognized document shape.
func NewSchemaError(msg string, cause error) *Error {
	return &Error{Kind: ErrKindSchema, Msg: msg, Err: cause}
}

// NewNumberError reports numeric text that failed to parse. The offending
// text is embedded in the message so it survives error chain flattening.
func NewNumberError(text string, cause error) *Error {
	return &Error{
		Kind: ErrKindNumber,
		Msg:  fmt.Sprintf("failed to parse string %q as a number", text),
		Err:  cause,
	}
}

// NewBitmapError reports bitmap text containing characters outside {0,1,x}.
// The text is reported after the optional "0b" prefix has been stripped.
func NewBitmapError(text string, cause error) *Error {
	return &Error{
		Kind: ErrKindBitmap,
		Msg:  fmt.Sprintf("failed to parse string %q as a bitmap", text),
		Err:  cause,
	}
}

// NewVendorQueryError reports a failed host vendor/model introspection query.
func NewVendorQueryError(cause error) *Error {
	return &Error{Kind: ErrKindVendorQuery, Msg: "failed to query host CPU", Err: cause}
}

// Sentinels for the template resolution gates.
var (
	// ErrVendorMismatch indicates the selected static template targets a
	// different CPU vendor than the host.
	ErrVendorMismatch = &Error{Kind: ErrKindVendorMismatch, Msg: "CPU vendor mismatched between host and selected template"}
	// ErrInvalidCpuModel indicates the host CPU generation is older than the
	// selected static template supports.
	ErrInvalidCpuModel = &Error{Kind: ErrKindCpuModel, Msg: "host CPU model is not permitted to use the selected template"}
)

// NewInvalidStaticTemplateError reports selection of a static template name
// that can never resolve (the legacy "None" sentinel).
func NewInvalidStaticTemplateError(id StaticTemplate) *Error {
	return &Error{
		Kind: ErrKindInvalidStaticTemplate,
		Msg:  fmt.Sprintf("invalid static CPU template %q", id.String()),
	}
}
