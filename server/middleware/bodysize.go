package middleware

import (
	"errors"
	"net/http"

	apperrors "github.com/kbukum/audioscribe/errors"
)

// BodySizeLimit caps the request body at limit bytes. Requests that declare a
// larger Content-Length are rejected with 413 before the body is read; others
// fail with *http.MaxBytesError once they cross the limit, which handlers map
// through PayloadTooLarge.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// PayloadTooLarge converts a body-limit failure into the 413 AppError.
// It returns nil when err is not caused by the limit.
func PayloadTooLarge(err error) *apperrors.AppError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.PayloadTooLarge(maxErr.Limit).WithCause(err)
	}
	return nil
}
