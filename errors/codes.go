package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Chain construction errors
const (
	// ErrCodeInvalidArgument indicates a missing or nil required operator argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidChain indicates an operator was chained onto a node that cannot accept it.
	ErrCodeInvalidChain ErrorCode = "INVALID_CHAIN"
)

// Consumption errors
const (
	// ErrCodeNotIterable indicates a source that cannot be resolved into an iteration triple.
	ErrCodeNotIterable ErrorCode = "NOT_ITERABLE"
	// ErrCodeTypeMismatch indicates a selector produced a value of the wrong shape.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInvariantViolation indicates a selector broke an engine invariant.
	ErrCodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
	// ErrCodeEmptySequence indicates a sequence had no element to satisfy the request.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeInvalidConfig indicates engine settings failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// ErrCodeInternal indicates an unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var buildTimeCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument: true,
	ErrCodeInvalidChain:    true,
}

// IsBuildTimeCode reports whether the code is raised while a chain is being built
// rather than while it is being consumed.
func IsBuildTimeCode(code ErrorCode) bool {
	return buildTimeCodes[code]
}
