package transcription

import (
	"context"
	"errors"

	"github.com/kbukum/audioscribe/provider"
)

// ErrTranscription marks every failure of the speech-to-text stage: a
// transport error, a timeout, or an empty transcript.
var ErrTranscription = errors.New("transcription failed")

// Transcriber converts the audio file at audioPath into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Provider is a named Transcriber that can be created from the registry.
type Provider interface {
	provider.Provider
	Transcriber
}

// NewRegistry creates a registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
