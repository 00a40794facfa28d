// Package transcription defines the speech-to-text contract used by the
// pipeline.
//
// # Backends
//
//   - transcription/openai: OpenAI Whisper through go-openai
package transcription
