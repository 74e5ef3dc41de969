package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeEmptySequence, "nothing here")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected code %s, got %s", ErrCodeEmptySequence, err.Code)
	}
	if err.Message != "nothing here" {
		t.Errorf("expected message 'nothing here', got %q", err.Message)
	}
}

func TestAppError_Argument_Success(t *testing.T) {
	err := Argument("where", "predicate")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %s", err.Code)
	}
	if err.Details["operator"] != "where" {
		t.Errorf("expected operator=where, got %v", err.Details["operator"])
	}
	if err.Details["argument"] != "predicate" {
		t.Errorf("expected argument=predicate, got %v", err.Details["argument"])
	}
	if !IsBuildTimeCode(err.Code) {
		t.Error("INVALID_ARGUMENT should be a build-time code")
	}
}

func TestAppError_EmptySequence_NotBuildTime(t *testing.T) {
	err := EmptySequence("first")
	if IsBuildTimeCode(err.Code) {
		t.Error("EMPTY_SEQUENCE should not be a build-time code")
	}
	if !strings.Contains(err.Error(), "first") {
		t.Errorf("expected operation name in message, got %q", err.Error())
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("realize: %w", EmptySequence("aggregate"))
	if !stderrors.Is(err, ErrEmptySequence) {
		t.Error("expected wrapped EmptySequence to match ErrEmptySequence")
	}
	if stderrors.Is(err, ErrNotIterable) {
		t.Error("EmptySequence must not match ErrNotIterable")
	}
	if stderrors.Is(err, fmt.Errorf("plain")) {
		t.Error("AppError must not match a plain error")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InvariantViolation("select", "selected value must be non-null").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := TypeMismatch("selectMany", "an iterable").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["operator"] != "selectMany" {
		t.Error("expected original details to be preserved")
	}

	err.WithDetails(map[string]any{"another": "detail"})
	if err.Details["another"] != "detail" {
		t.Error("expected another=detail to be merged")
	}
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info to be preserved after second merge")
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := NotIterable("invalid")
	s := err.Error()
	if !strings.Contains(s, "NOT_ITERABLE") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "not iterable") {
		t.Errorf("expected error string to contain message, got %q", s)
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	err2 := InvalidChain("thenBy", "a sort")
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"Argument", Argument("zip", "second"), ErrCodeInvalidArgument},
		{"NotIterable", NotIterable("invalid"), ErrCodeNotIterable},
		{"TypeMismatch", TypeMismatch("selectMany", "an iterable"), ErrCodeTypeMismatch},
		{"InvariantViolation", InvariantViolation("select", "nil"), ErrCodeInvariantViolation},
		{"InvalidChain", InvalidChain("thenBy", "a sort"), ErrCodeInvalidChain},
		{"EmptySequence", EmptySequence("min"), ErrCodeEmptySequence},
		{"InvalidConfig", InvalidConfig("bad"), ErrCodeInvalidConfig},
		{"MissingField", MissingField("name"), ErrCodeMissingField},
		{"InvalidFormat", InvalidFormat("date", "RFC3339"), ErrCodeInvalidFormat},
		{"InvalidInput", InvalidInput("email", "must be valid"), ErrCodeInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if CodeOf(tc.err) != tc.code {
				t.Errorf("CodeOf: expected %s, got %s", tc.code, CodeOf(tc.err))
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", EmptySequence("last"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find the AppError")
	}
	if appErr.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", appErr.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError false for plain error")
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
}
