// Package errors provides error handling for bdaresume.
//
// This package re-exports github.com/cockroachdb/errors so every package gets
// stack traces, wrapping, and user-facing hints from one import:
//
//	if err := promoter.Promote(ctx, arn, stage); err != nil {
//	    return errors.WithHint(errors.Wrap(err, "promote blueprint"),
//	        "check that the stack is deployed: cdk deploy")
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Stack traces
var (
	GetReportableStackTrace = crdb.GetReportableStackTrace
	GetStack                = crdb.GetReportableStackTrace
)

// Mark attaches a sentinel so errors.Is matches it without changing the message.
var Mark = crdb.Mark

// Common sentinel errors. Wrap or Mark these to add context while keeping
// errors.Is working across package boundaries.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the input was malformed or incomplete
	ErrInvalidRequest = New("invalid request")

	// ErrServiceUnavailable indicates a remote service call failed
	ErrServiceUnavailable = New("service unavailable")

	// ErrTimeout indicates an operation ran out of its time budget
	ErrTimeout = New("operation timed out")

	// ErrMalformedResponse indicates a remote response lacked a required field
	ErrMalformedResponse = New("malformed response")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsTimeoutError checks if an error is or wraps ErrTimeout
func IsTimeoutError(err error) bool {
	return err != nil && Is(err, ErrTimeout)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRequest)
}

// Diagnostic renders err for a terminal: the message followed by any hints,
// one per line. Used by CLI entry points before exiting non-zero.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(err.Error())
	for _, hint := range GetAllHints(err) {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}
