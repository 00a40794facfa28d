// Package server provides the HTTP server: a Gin engine behind a standard
// middleware chain, served over HTTP/1.1 and h2c.
//
// # Middleware
//
// Server-level (server/middleware), outermost first:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request id generation and propagation
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body cap
//   - RequestLogger: request logging with duration tracking
//
// Route-level: Auth, the bearer-token gate.
//
// # Endpoints
//
// Built-in handlers (server/endpoint): Hello for GET / and Version.
package server
