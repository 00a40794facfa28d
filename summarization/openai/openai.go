// Package openai summarizes prompts with OpenAI chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/provider"
	"github.com/kbukum/audioscribe/summarization"
)

const (
	// ProviderName is the registered name for this backend.
	ProviderName = "openai"

	defaultTimeout = 60 * time.Second
)

// Config holds chat completion settings.
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
		c.Model = goopenai.GPT4o
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
		return fmt.Errorf("openai api key is required")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("summarization.temperature must be within [0, 2] (got: %v)", *c.Temperature)
	}
	return nil
}

// Provider implements summarization.Provider.
type Provider struct {
	cfg    Config
	client *goopenai.Client
	log    *logger.Logger
}

// New creates a chat completion summarizer.
func New(cfg Config, log *logger.Logger) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
		log:    log.WithComponent("summarization.openai"),
	}, nil
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
		return New(cfg, log)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// Summarize sends prompt as the system message and returns the first choice.
func (p *Provider) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt},
		},
		Temperature: requestTemperature(*p.cfg.Temperature),
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", summarization.Wrap(fmt.Errorf("timed out after %s: %w", p.cfg.Timeout, err))
		}
		return "", summarization.Wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", summarization.ErrEmptyCompletion
	}

	text, err := summarization.Completion(resp.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	p.log.Debug("summary completed", logger.Fields(
		"model", p.cfg.Model,
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	))
	return text, nil
}

// requestTemperature maps 0 to the smallest positive float32: the client drops
// a zero temperature from the request body and the API then applies its own
// default.
func requestTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
