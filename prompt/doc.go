// Package prompt maps a transcription category onto the instruction sent to
// the summarization model.
//
// Categories arrive as untyped form input. ParseCategory never fails: any
// value outside the recognized set becomes Unrecognized, and Select returns
// Passthrough for it so the raw transcript is returned unchanged.
package prompt
