package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified engine error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is matching. Only the code is compared.
var (
	ErrArgument      = New(ErrCodeInvalidArgument, "invalid argument")
	ErrInvalidChain  = New(ErrCodeInvalidChain, "invalid chain")
	ErrNotIterable   = New(ErrCodeNotIterable, "not iterable")
	ErrTypeMismatch  = New(ErrCodeTypeMismatch, "type mismatch")
	ErrInvariant     = New(ErrCodeInvariantViolation, "invariant violation")
	ErrEmptySequence = New(ErrCodeEmptySequence, "empty sequence")
	ErrInvalidConfig = New(ErrCodeInvalidConfig, "invalid config")
)

// --- Engine Error Constructors ---

// Argument creates a new AppError for a missing required operator argument.
func Argument(operator, argument string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("%s: %s must be non-nil", operator, argument),
		Details: map[string]any{"operator": operator, "argument": argument},
	}
}

// NotIterable creates a new AppError for a source that cannot be iterated.
func NotIterable(kind string) *AppError {
	return &AppError{
		Code:    ErrCodeNotIterable,
		Message: fmt.Sprintf("source of kind %q is not iterable", kind),
		Details: map[string]any{"kind": kind},
	}
}

// TypeMismatch creates a new AppError for a selector result of the wrong shape.
func TypeMismatch(operator, expected string) *AppError {
	return &AppError{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("%s: selector result must be %s", operator, expected),
		Details: map[string]any{"operator": operator, "expected": expected},
	}
}

// InvariantViolation creates a new AppError for a broken engine invariant.
func InvariantViolation(operator, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvariantViolation,
		Message: fmt.Sprintf("%s: %s", operator, message),
		Details: map[string]any{"operator": operator},
	}
}

// InvalidChain creates a new AppError for an operator chained onto the wrong kind of node.
func InvalidChain(operator, requires string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidChain,
		Message: fmt.Sprintf("%s can only follow %s", operator, requires),
		Details: map[string]any{"operator": operator, "requires": requires},
	}
}

// EmptySequence creates a new AppError for an operation that found no element.
func EmptySequence(operation string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptySequence,
		Message: fmt.Sprintf("%s: sequence contains no matching element", operation),
		Details: map[string]any{"operation": operation},
	}
}

// InvalidConfig creates a new AppError for settings that failed validation.
func InvalidConfig(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: reason}
}

// --- Validation Error Constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason), Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates a new AppError for an invalid field format.
func InvalidFormat(field, expectedFormat string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		Details: map[string]any{"field": field, "expected_format": expectedFormat},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}
