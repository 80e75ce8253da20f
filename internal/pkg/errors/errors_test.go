package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "invalid input")

	if err.Code != CodeValidation {
		t.Errorf("expected code=%s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "invalid input" {
		t.Errorf("expected message='invalid input', got %s", err.Message)
	}
	if len(err.Stack) == 0 {
		t.Error("expected stack trace to be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeNotFound, "template %s not found", "lower-third")

	if err.Code != CodeNotFound {
		t.Errorf("expected code=%s, got %s", CodeNotFound, err.Code)
	}
	if err.Message != "template lower-third not found" {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "simple error",
			err:      New(CodeValidation, "invalid"),
			contains: []string{"VALIDATION_ERROR", "invalid"},
		},
		{
			name: "error with op",
			err: &Error{
				Code:    CodeInternal,
				Message: "generation failed",
				Op:      "template.artifact",
			},
			contains: []string{"template.artifact", "INTERNAL_ERROR", "generation failed"},
		},
		{
			name: "error with underlying",
			err: &Error{
				Code:    CodeInternal,
				Message: "wrapper",
				Err:     fmt.Errorf("underlying error"),
			},
			contains: []string{"wrapper", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str := tt.err.Error()
			for _, c := range tt.contains {
				if !strings.Contains(str, c) {
					t.Errorf("expected %q to contain %q", str, c)
				}
			}
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	base := NotFound("template", "bug")
	wrapped := Wrap(base, "repo.load", "load failed")

	if wrapped.Code != CodeNotFound {
		t.Errorf("expected preserved code, got %s", wrapped.Code)
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected wrapped error to match base via Is")
	}
	if wrapped.Op != "repo.load" {
		t.Errorf("op = %s", wrapped.Op)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "op", "msg") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "worker.publish", "publish failed")
	if wrapped.Code != CodeInternal {
		t.Errorf("expected internal code, got %s", wrapped.Code)
	}
	if !strings.Contains(wrapped.Error(), "boom") {
		t.Errorf("cause lost: %s", wrapped.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, 400},
		{CodeBadRequest, 400},
		{CodeNotFound, 404},
		{CodeConflict, 409},
		{CodeTimeout, 504},
		{CodeUnavailable, 503},
		{CodeInternal, 500},
		{Code("SOMETHING_ELSE"), 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &Error{Code: tt.code}
			if got := err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	nf := NotFound("template", "x")
	if nf.Code != CodeNotFound || nf.Fields["id"] != "x" {
		t.Errorf("NotFound: %+v", nf)
	}

	v := ValidationField("id", "must be a slug")
	if v.Code != CodeValidation || v.Fields["field"] != "id" {
		t.Errorf("ValidationField: %+v", v)
	}

	c := Conflict("template id taken")
	if c.Code != CodeConflict {
		t.Errorf("Conflict: %+v", c)
	}
}

func TestGetters(t *testing.T) {
	err := ValidationField("preset", "unknown preset")

	if GetCode(err) != CodeValidation {
		t.Errorf("GetCode = %s", GetCode(err))
	}
	if GetHTTPStatus(err) != 400 {
		t.Errorf("GetHTTPStatus = %d", GetHTTPStatus(err))
	}
	if GetFields(err)["field"] != "preset" {
		t.Errorf("GetFields = %v", GetFields(err))
	}

	plain := fmt.Errorf("plain")
	if GetCode(plain) != CodeInternal {
		t.Errorf("GetCode(plain) = %s", GetCode(plain))
	}
	if GetHTTPStatus(plain) != 500 {
		t.Errorf("GetHTTPStatus(plain) = %d", GetHTTPStatus(plain))
	}
	if GetFields(plain) != nil {
		t.Errorf("GetFields(plain) = %v", GetFields(plain))
	}
}

func TestIsCode(t *testing.T) {
	err := Wrap(NotFound("template", "x"), "service.get", "lookup failed")

	if !IsNotFound(err) {
		t.Error("expected IsNotFound")
	}
	if IsConflict(err) {
		t.Error("unexpected IsConflict")
	}
}

func TestStackTrace(t *testing.T) {
	err := New(CodeInternal, "boom")
	trace := err.StackTrace()

	if !strings.Contains(trace, "errors_test.go") {
		t.Errorf("expected trace to include the caller, got:\n%s", trace)
	}
}
