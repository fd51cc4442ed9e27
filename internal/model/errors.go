package model

import "fmt"

// ErrorCode is the stable machine-readable classification of a failure.
type ErrorCode string

const (
	CodeValidation    ErrorCode = "VALIDATION_ERROR"    // malformed or incomplete input
	CodeNotFound      ErrorCode = "NOT_FOUND"           // referenced evidence or case absent
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR" // lookup table / data-model mismatch, fatal
	CodeTrustScore    ErrorCode = "TRUST_SCORE_ERROR"   // scoring pipeline invariant violated
)

// Error is the typed failure every user-visible operation returns: a stable
// code plus a human-readable message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed input.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an absent referenced record.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConfigurationError reports a lookup-table or data-model mismatch.
func NewConfigurationError(format string, args ...any) *Error {
	return &Error{Code: CodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// NewTrustScoreError reports a violated scoring invariant.
func NewTrustScoreError(format string, args ...any) *Error {
	return &Error{Code: CodeTrustScore, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the error code, or empty string for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	for err != nil {
		if te, ok := err.(*Error); ok {
			e = te
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return ""
	}
	return e.Code
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}
