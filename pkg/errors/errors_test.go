package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataTable(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			if meta.HTTPStatus != tt.status {
				t.Fatalf("expected status %d got %d", tt.status, meta.HTTPStatus)
			}
			if meta.PublicMessage != tt.publicMsg {
				t.Fatalf("expected public message %q got %q", tt.publicMsg, meta.PublicMessage)
			}
			if meta.Retryable != tt.retryable {
				t.Fatalf("expected retryable %v got %v", tt.retryable, meta.Retryable)
			}
			if meta.DetailsAllowed != tt.detailsOK {
				t.Fatalf("expected details allowed %v got %v", tt.detailsOK, meta.DetailsAllowed)
			}
		})
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("NO_SUCH_CODE")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestNewAndWithDetails(t *testing.T) {
	err := New(CodeValidation, "email is required")
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Message() != "email is required" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	err.WithDetails(map[string]string{"email": "is required"})
	if err.Details() == nil {
		t.Fatalf("details should be preserved")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("duplicate key")
	wrapped := Wrap(CodeConflict, cause, "email already exists")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}

	if noCause := Wrap(CodeInternal, nil, "fallback"); noCause.Unwrap() != nil {
		t.Fatalf("Wrap(nil) should have no cause")
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "insufficient role")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("As on untyped error should return nil")
	}
}
