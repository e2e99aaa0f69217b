// internal/core/errors_test.go
package core

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrTemplateNotFound, ErrTemplateNotFound) {
		t.Error("same error should match")
	}
	if errors.Is(ErrTemplateNotFound, ErrTemplateInvalid) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrConfigCorrupt, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrConfigCorrupt.Code {
		t.Error("code not preserved")
	}
}

func TestRequestError_Is(t *testing.T) {
	err := &RequestError{StatusCode: 429, Message: "rate limit exceeded"}
	if !errors.Is(err, ErrRequestFailed) {
		t.Error("RequestError should match ErrRequestFailed")
	}
	if errors.Is(err, ErrUnknownModel) {
		t.Error("RequestError should not match other codes")
	}
}

func TestRequestError_Error(t *testing.T) {
	err := &RequestError{StatusCode: 401, Message: "invalid key"}
	want := "[REQUEST_FAILED] invalid key (status 401)"
	if err.Error() != want {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}
