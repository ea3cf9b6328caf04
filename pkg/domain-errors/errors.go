// Package derrors defines the machine-readable error taxonomy shared by the
// contract engine and its transports. Every failure surfaced by the engine
// carries one of these codes plus a human-readable detail, so gateways can map
// errors without string matching.
package derrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidStatus     Code = "INVALID_STATUS"
	CodeInvalidTransition Code = "INVALID_STATUS_TRANSITION"
	CodeConflict          Code = "WRITE_CONFLICT"
	CodeNotModifiable     Code = "NOT_MODIFIABLE"
	CodeNotDeletable      Code = "NOT_DELETABLE"
	CodeMissingSignature  Code = "MISSING_SIGNATURE"
	CodeMissingHash       Code = "MISSING_HASH"
	CodeQuery             Code = "QUERY_ERROR"
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeInternal          Code = "INTERNAL"
)

// Error pairs a code with detail text and an optional wrapped cause.
type Error struct {
	Code   Code
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error.
func New(code Code, detail string) error {
	return &Error{Code: code, Detail: detail}
}

// Newf builds a coded error with formatted detail.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and detail to an underlying cause.
func Wrap(err error, code Code, detail string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Detail: detail, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// produced outside this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto the HTTP status used by the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest, CodeMissingSignature, CodeMissingHash:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeConflict:
		return http.StatusConflict
	case CodeInvalidStatus, CodeInvalidTransition, CodeNotModifiable, CodeNotDeletable:
		return http.StatusConflict
	case CodeQuery, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
