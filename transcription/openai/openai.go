// Package openai transcribes audio with the OpenAI Whisper API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/provider"
	"github.com/kbukum/audioscribe/transcription"
)

const (
	// ProviderName is the registered name for this backend.
	ProviderName = "openai"

	defaultTimeout = 120 * time.Second
)

// Config holds Whisper client settings.
type Config struct {
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Model    string        `yaml:"model" mapstructure:"model"`
	Language string        `yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = goopenai.Whisper1
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
	if c.Timeout < 0 {
		return fmt.Errorf("transcription.timeout must be positive (got: %s)", c.Timeout)
	}
	return nil
}

// Provider implements transcription.Provider.
type Provider struct {
	cfg    Config
	client *goopenai.Client
	log    *logger.Logger
}

// New creates a Whisper transcriber.
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
		log:    log.WithComponent("transcription.openai"),
	}, nil
}

// Factory returns a provider.Factory reading api_key, base_url, model,
// language and timeout from the option map.
func Factory(log *logger.Logger) provider.Factory[transcription.Provider] {
	return func(opts map[string]any) (transcription.Provider, error) {
		timeout, err := provider.Duration(opts, "timeout")
		if err != nil {
			return nil, err
		}
		return New(Config{
			APIKey:   provider.String(opts, "api_key"),
			BaseURL:  provider.String(opts, "base_url"),
			Model:    provider.String(opts, "model"),
			Language: provider.String(opts, "language"),
			Timeout:  timeout,
		}, log)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// Transcribe uploads the file at audioPath and returns the recognized text.
func (p *Provider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    p.cfg.Model,
		FilePath: audioPath,
		Language: p.cfg.Language,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s: %w", transcription.ErrTranscription, p.cfg.Timeout, err)
		}
		return "", fmt.Errorf("%w: %w", transcription.ErrTranscription, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", transcription.ErrTranscription)
	}

	p.log.Debug("transcription completed", logger.Fields(
		"model", p.cfg.Model,
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	))
	return text, nil
}
