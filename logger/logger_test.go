package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "audioscribe", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "invalid-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info line")
	}
}

func TestJSONOutputCarriesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug")
	l.WithComponent("pipeline").Info("done", Fields("category", "basic-summary", "chars", 12))

	out := decodeLine(t, &buf)
	if out[FieldService] != "audioscribe" {
		t.Errorf("expected service field, got %v", out[FieldService])
	}
	if out[FieldComponent] != "pipeline" {
		t.Errorf("expected component field, got %v", out[FieldComponent])
	}
	if out["category"] != "basic-summary" {
		t.Errorf("expected category field, got %v", out["category"])
	}
	if out["message"] != "done" {
		t.Errorf("expected message 'done', got %v", out["message"])
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	ctx := ContextWithRequestID(context.Background(), "req-42")

	l.WithContext(ctx).Info("hello")

	out := decodeLine(t, &buf)
	if out[FieldRequestID] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", out[FieldRequestID])
	}
}

func TestWithContextWithoutRequestID(t *testing.T) {
	l := NewNop()
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when context has no request id")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	l.WithError(errors.New("boom")).Error("failed")

	out := decodeLine(t, &buf)
	if out["error"] != "boom" {
		t.Errorf("expected error field 'boom', got %v", out["error"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	l.WithFields(map[string]interface{}{"stage": "transcribe"}).Warn("slow")

	out := decodeLine(t, &buf)
	if out["stage"] != "transcribe" {
		t.Errorf("expected stage field, got %v", out["stage"])
	}
	if out["level"] != "warn" {
		t.Errorf("expected warn level, got %v", out["level"])
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	var buf bytes.Buffer
	SetGlobalLogger(newJSONLogger(&buf, "info"))
	Info("from global")
	if !strings.Contains(buf.String(), "from global") {
		t.Errorf("expected global logger output, got %q", buf.String())
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(f) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(f), f)
	}
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields: %v", f)
	}
}

func TestErrorFields(t *testing.T) {
	f := ErrorFields("transcribe", errors.New("timeout"))
	if f[FieldOperation] != "transcribe" {
		t.Errorf("expected operation 'transcribe', got %v", f[FieldOperation])
	}
	if f[FieldError] != "timeout" {
		t.Errorf("expected error 'timeout', got %v", f[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	f := DurationFields("summarize", 1500*time.Millisecond)
	if f[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", f[FieldDuration])
	}
}

func TestMergeWithError(t *testing.T) {
	f := MergeWithError(nil, errors.New("x"))
	if f[FieldError] != "x" {
		t.Errorf("expected error 'x', got %v", f[FieldError])
	}
}
