// Package pipeline runs one transcription request end to end.
//
// An Orchestrator persists the upload to a scratch file, transcribes it,
// selects a prompt for the requested category and, unless the category is
// unrecognized, summarizes the transcript. The scratch file is released on
// every path once it exists.
//
// Failures of the external services surface as a single PROCESSING_FAILED
// application error. The underlying cause is logged and kept in the error
// chain but never reaches the client.
package pipeline
