package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/lazyseq/errors"
)

type sortSettings struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=stable unstable"`
}

type settings struct {
	Name     string       `mapstructure:"name" validate:"required"`
	Endpoint string       `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Sort     sortSettings `mapstructure:"sort"`
}

func TestValidate_Valid(t *testing.T) {
	s := settings{Name: "svc", Endpoint: "localhost:4318", Sort: sortSettings{Mode: "stable"}}
	if err := Validate(s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_FieldPaths(t *testing.T) {
	err := Validate(settings{Endpoint: "not a host", Sort: sortSettings{Mode: "random"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", appErr.Details["fields"])
	}
	want := map[string]string{
		"name":      "is required",
		"endpoint":  "must be a host:port pair",
		"sort.mode": "must be one of: stable unstable",
	}
	for _, f := range fields {
		if want[f.Field] != f.Message {
			t.Errorf("field %s: got %q, want %q", f.Field, f.Message, want[f.Field])
		}
	}
	if !strings.Contains(appErr.Message, "sort.mode") {
		t.Errorf("message should name nested field, got %q", appErr.Message)
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	err := Validate("plain string")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", errors.CodeOf(err))
	}
}

func TestValidatorRequired(t *testing.T) {
	if New().Required("name", "John").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("name", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("name", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredIf(t *testing.T) {
	if New().RequiredIf(false, "name", "").HasErrors() {
		t.Error("condition false should skip the check")
	}
	if !New().RequiredIf(true, "name", "").HasErrors() {
		t.Error("condition true should require the value")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "console"}
	if New().OneOf("format", "json", allowed).HasErrors() {
		t.Error("allowed value rejected")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("empty value should be skipped")
	}
	v := New().OneOf("format", "xml", allowed)
	if !v.HasErrors() || v.Errors()[0].Message != "must be one of: json, console" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "x", "bad").HasErrors() {
		t.Error("true condition should pass")
	}
	if !New().Custom(false, "x", "bad").HasErrors() {
		t.Error("false condition should fail")
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil for no errors")
	}

	appErr := New().Required("a", "").Custom(false, "b", "is wrong").Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Message != "a: is required; b: is wrong" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"ServiceName": "service_name",
		"already":     "already",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
