// Package svgerr defines the error codes reported while converting
// a document.
package svgerr

import (
	"fmt"
	"strings"
)

// Code identifies a class of conversion failure.
type Code string

const (
	// DanglingGradientReference indicates a gradient borrows its stops from
	// an id never seen with stops of its own.
	DanglingGradientReference Code = "dangling-gradient-reference"
	// UnsupportedClipShape indicates a clip path without exactly one
	// polygon or circle payload.
	UnsupportedClipShape Code = "unsupported-clip-shape"
	// UnsupportedDefinitionKind indicates an element of the definitions
	// section which is neither a gradient, a clip path nor a style block.
	UnsupportedDefinitionKind Code = "unsupported-definition-kind"
	// UnsupportedShapeKind indicates a group child outside of the
	// supported primitives, or a top-level element which is not a group.
	UnsupportedShapeKind Code = "unsupported-shape-kind"
	// MalformedStyleDeclaration indicates a declaration without a colon.
	// It is never returned, only logged.
	MalformedStyleDeclaration Code = "malformed-style-declaration"
	// MaxDepthExceeded indicates groups nested deeper than allowed.
	MaxDepthExceeded Code = "max-depth-exceeded"
	// InvalidDocument indicates the input is not a usable SVG document.
	InvalidDocument Code = "invalid-document"
)

// Sentinels for errors.Is; only the Code is compared.
var (
	ErrDanglingGradientReference = &Error{Code: DanglingGradientReference}
	ErrUnsupportedClipShape      = &Error{Code: UnsupportedClipShape}
	ErrUnsupportedDefinitionKind = &Error{Code: UnsupportedDefinitionKind}
	ErrUnsupportedShapeKind      = &Error{Code: UnsupportedShapeKind}
	ErrMaxDepthExceeded          = &Error{Code: MaxDepthExceeded}
	ErrInvalidDocument           = &Error{Code: InvalidDocument}
)

// Error is a conversion failure, carrying the offending
// id or element name in Subject.
type Error struct {
	Code    Code
	Subject string
	Message string
}

// New returns an error with the given code and subject.
func New(code Code, subject, format string, args ...interface{}) *Error {
	return &Error{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return "svgerr <nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Subject != "" {
		fmt.Fprintf(&b, " (%s)", e.Subject)
	}
	return b.String()
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}
