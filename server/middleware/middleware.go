package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kbukum/audioscribe/errors"
)

// Middleware wraps an http.Handler with additional behavior. Server-level
// middleware runs in front of the Gin engine, so it also sees requests that
// never match a route.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// writeError writes an AppError envelope outside of Gin.
func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.HTTPStatus)
	_ = json.NewEncoder(w).Encode(err.ToResponse())
}
