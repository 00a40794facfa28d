package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/audioscribe/auth/cognito"
	"github.com/kbukum/audioscribe/config"
	"github.com/kbukum/audioscribe/observability"
	"github.com/kbukum/audioscribe/server"
	"github.com/kbukum/audioscribe/storage/scratch"
	"github.com/kbukum/audioscribe/summarization"
	"github.com/kbukum/audioscribe/validation"
)

const serviceName = "audioscribe"

// Summarization backends selectable through summarization.provider.
const (
	backendOpenAI = "openai"
	backendGemini = "gemini"
)

// Config is the full service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Auth          cognito.Config       `yaml:"auth" mapstructure:"auth"`
	Storage       scratch.Config       `yaml:"storage" mapstructure:"storage"`
	OpenAI        OpenAIConfig         `yaml:"openai" mapstructure:"openai"`
	Transcription TranscriptionConfig  `yaml:"transcription" mapstructure:"transcription"`
	Summarization SummarizationConfig  `yaml:"summarization" mapstructure:"summarization"`
	Gemini        GeminiConfig         `yaml:"gemini" mapstructure:"gemini"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// OpenAIConfig holds the credentials shared by Whisper and chat completions.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model is the chat model used when summarization.provider is openai.
	Model string `yaml:"model" mapstructure:"model"`
}

type TranscriptionConfig struct {
	Model    string        `yaml:"model" mapstructure:"model"`
	Language string        `yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type SummarizationConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider" validate:"omitempty,oneof=openai gemini"`
	// Model overrides the selected backend's own model setting.
	Model       string        `yaml:"model" mapstructure:"model"`
	Temperature *float32      `yaml:"temperature" mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// ApplyDefaults fills unset values, honoring the flat environment names the
// service has always been deployed with.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()

	config.Fallback(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	config.Fallback(&c.Auth.UserPoolID, "COGNITO_USER_POOL_ID")
	config.Fallback(&c.Auth.ClientID, "COGNITO_CLIENT_ID")
	config.Fallback(&c.Gemini.APIKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
	if len(c.Server.CORS.AllowedOrigins) == 0 {
		c.Server.CORS.AllowedOrigins = config.SplitList(os.Getenv("CORS_ORIGINS"))
	}
	if c.Server.Port == 0 {
		if p, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PORT"))); err == nil {
			c.Server.Port = p
		}
	}

	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Summarization.Provider == "" {
		c.Summarization.Provider = backendOpenAI
	}
	if c.Summarization.Temperature == nil {
		t := float32(summarization.DefaultTemperature)
		c.Summarization.Temperature = &t
	}
}

// Validate fails fast on anything that would only surface on the first request.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("config.openai.api_key is required")
	}
	if c.Summarization.Provider == backendGemini && c.Gemini.APIKey == "" {
		return fmt.Errorf("config.gemini.api_key is required when summarization.provider is gemini")
	}
	return nil
}

// transcriptionOptions builds the factory options for the speech-to-text backend.
func (c *Config) transcriptionOptions() map[string]any {
	return map[string]any{
		"api_key":  c.OpenAI.APIKey,
		"base_url": c.OpenAI.BaseURL,
		"model":    c.Transcription.Model,
		"language": c.Transcription.Language,
		"timeout":  c.Transcription.Timeout,
	}
}

// summarizationOptions builds the factory options for the selected LLM backend.
func (c *Config) summarizationOptions() map[string]any {
	opts := map[string]any{"timeout": c.Summarization.Timeout}
	if c.Summarization.Temperature != nil {
		opts["temperature"] = *c.Summarization.Temperature
	}
	model := c.Summarization.Model
	switch c.Summarization.Provider {
	case backendGemini:
		opts["api_key"] = c.Gemini.APIKey
		opts["base_url"] = c.Gemini.BaseURL
		if model == "" {
			model = c.Gemini.Model
		}
	default:
		opts["api_key"] = c.OpenAI.APIKey
		opts["base_url"] = c.OpenAI.BaseURL
		if model == "" {
			model = c.OpenAI.Model
		}
	}
	opts["model"] = model
	return opts
}
