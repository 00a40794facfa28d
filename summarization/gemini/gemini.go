// Package gemini summarizes prompts with Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/provider"
	"github.com/kbukum/audioscribe/summarization"
)

const (
	// ProviderName is the registered name for this backend.
	ProviderName = "gemini"

	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

// Config holds Gemini settings.
type Config struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	Temperature *float32      `yaml:"temperature" mapstructure:"temperature"` // nil means the default
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Temperature == nil {
		t := float32(summarization.DefaultTemperature)
		c.Temperature = &t
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("gemini api key is required")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("summarization.temperature must be within [0, 2] (got: %v)", *c.Temperature)
	}
	return nil
}

// Provider implements summarization.Provider.
type Provider struct {
	cfg    Config
	client *genai.Client
	log    *logger.Logger
}

// New creates a Gemini summarizer. ctx only bounds client construction.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{cfg: cfg, client: client, log: log.WithComponent("summarization.gemini")}, nil
}

// Factory returns a provider.Factory reading api_key, base_url, model,
// temperature and timeout from the option map.
func Factory(log *logger.Logger) provider.Factory[summarization.Provider] {
	return func(opts map[string]any) (summarization.Provider, error) {
		timeout, err := provider.Duration(opts, "timeout")
		if err != nil {
			return nil, err
		}
		cfg := Config{
			APIKey:  provider.String(opts, "api_key"),
			BaseURL: provider.String(opts, "base_url"),
			Model:   provider.String(opts, "model"),
			Timeout: timeout,
		}
		if temp, ok := provider.Float(opts, "temperature"); ok {
			t := float32(temp)
			cfg.Temperature = &t
		}
		return New(context.Background(), cfg, log)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// Summarize sends prompt as a single user turn. The Gemini API rejects a
// request whose only content is a system instruction.
func (p *Provider) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", summarization.Wrap(fmt.Errorf("timed out after %s: %w", p.cfg.Timeout, err))
		}
		return "", summarization.Wrap(err)
	}

	text, err := summarization.Completion(firstCandidateText(result))
	if err != nil {
		return "", err
	}
	p.log.Debug("summary completed", logger.Fields(
		"model", p.cfg.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	))
	return text, nil
}

func firstCandidateText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
