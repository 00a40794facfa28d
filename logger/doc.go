// Package logger provides structured logging on top of zerolog.
//
// Loggers carry the service name and can be narrowed with WithComponent,
// WithFields and WithContext (request id). Fields are passed as maps:
//
//	log := logger.WithComponent("pipeline")
//	log.Info("request processed", logger.Fields("category", "basic-summary"))
package logger
