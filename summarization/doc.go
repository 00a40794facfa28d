// Package summarization defines the text-generation contract used to turn a
// prompt built from a transcript into the final text.
//
// # Backends
//
//   - summarization/openai: OpenAI chat completions (default)
//   - summarization/gemini: Google Gemini through google.golang.org/genai
//
// Both send the prompt as a single message at the configured temperature and
// return the text of the first candidate. An empty completion is an error,
// never a successful empty string.
package summarization
