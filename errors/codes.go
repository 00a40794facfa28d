package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingFile indicates an upload without a file payload.
	ErrCodeMissingFile ErrorCode = "MISSING_FILE"
	// ErrCodePayloadTooLarge indicates the request body exceeded the limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Authentication errors
const (
	// ErrCodeInvalidToken indicates a missing, malformed, or unverifiable bearer token.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Processing errors
const (
	// ErrCodeProcessingFailed indicates an upstream speech-to-text or text-generation failure.
	ErrCodeProcessingFailed ErrorCode = "PROCESSING_FAILED"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProcessingFailed: true,
}

// IsRetryableCode reports whether a client may retry a request that failed with code.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
