package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_RetryableDetection(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeProcessingFailed, true},
		{ErrCodeInvalidToken, false},
		{ErrCodeMissingFile, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg", http.StatusTeapot)
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, tc.code)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("expected status %d, got %d", http.StatusTeapot, err.HTTPStatus)
			}
		})
	}
}

func TestConstructors_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"invalid token", InvalidToken(), ErrCodeInvalidToken, http.StatusUnauthorized},
		{"missing file", MissingFile("file"), ErrCodeMissingFile, http.StatusBadRequest},
		{"validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"too large", PayloadTooLarge(10), ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"processing", ProcessingFailed(nil), ErrCodeProcessingFailed, http.StatusInternalServerError},
		{"internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestProcessingFailed_HidesCause(t *testing.T) {
	cause := fmt.Errorf("openai: 502 bad gateway from upstream")
	err := ProcessingFailed(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}

	body, marshalErr := json.Marshal(err.ToResponse())
	if marshalErr != nil {
		t.Fatalf("marshal: %v", marshalErr)
	}
	if strings.Contains(string(body), "502") || strings.Contains(string(body), "openai") {
		t.Errorf("response leaks cause: %s", body)
	}
	if !strings.Contains(string(body), string(ErrCodeProcessingFailed)) {
		t.Errorf("response missing code: %s", body)
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := InvalidToken()
	if err.Error() != "INVALID_TOKEN: Invalid token" {
		t.Errorf("unexpected error string %q", err.Error())
	}
	err.WithCause(stderrors.New("expired"))
	if !strings.Contains(err.Error(), "cause: expired") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad").WithDetail("field", "transcriptionType")
	if err.Details["field"] != "transcriptionType" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", MissingFile("file"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError to be found through wrapping")
	}
	if appErr.Code != ErrCodeMissingFile {
		t.Errorf("expected MISSING_FILE, got %s", appErr.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}
