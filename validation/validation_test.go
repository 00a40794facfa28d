package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kbukum/audioscribe/errors"
)

type upstream struct {
	APIKey  string  `mapstructure:"api_key" validate:"required"`
	BaseURL string  `mapstructure:"base_url" validate:"omitempty,url"`
	Temp    float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

type settings struct {
	Provider string   `mapstructure:"provider" validate:"oneof=openai gemini"`
	Upstream upstream `mapstructure:"upstream"`
}

type uploadForm struct {
	UserPrompt string `form:"userPrompt" validate:"max=5"`
}

func TestValidate_Valid(t *testing.T) {
	s := settings{Provider: "openai", Upstream: upstream{APIKey: "k", Temp: 0.7}}
	if err := Validate(s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_ReportsNestedConfigNames(t *testing.T) {
	s := settings{Provider: "other", Upstream: upstream{BaseURL: "not a url", Temp: 3}}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.HTTPStatus)
	}

	for _, want := range []string{
		"provider: must be one of: openai gemini",
		"upstream.api_key: is required",
		"upstream.base_url: must be a valid URL",
		"upstream.temperature: must be less than or equal to 2",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, appErr.Message)
		}
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestValidate_UsesFormTagNames(t *testing.T) {
	err := Validate(uploadForm{UserPrompt: "too long"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "userPrompt: must be at most 5") {
		t.Errorf("expected form field name in message, got %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"APIKey":     "a_p_i_key",
		"UserPrompt": "user_prompt",
		"name":       "name",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
