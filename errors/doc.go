// Package errors provides the structured error type returned by the HTTP surface.
// Each AppError carries a code, a caller-safe message, and an HTTP status.
// The underlying cause stays server-side.
package errors
