package summarization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/audioscribe/provider"
)

var (
	// ErrSummarization marks every failure of the summarization stage.
	ErrSummarization = errors.New("summarization failed")
	// ErrEmptyCompletion is returned when the model produced no text.
	ErrEmptyCompletion = fmt.Errorf("%w: empty completion", ErrSummarization)
)

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature = 0.7

// Summarizer sends prompt to a text-generation model and returns its reply.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Provider is a named Summarizer that can be created from the registry.
type Provider interface {
	provider.Provider
	Summarizer
}

// NewRegistry creates a registry for summarization providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// Completion validates a model reply. Blank text yields ErrEmptyCompletion.
func Completion(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Wrap marks err as a summarization failure, keeping it in the chain.
func Wrap(err error) error {
	if err == nil || errors.Is(err, ErrSummarization) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSummarization, err)
}
