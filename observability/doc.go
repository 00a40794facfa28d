// Package observability wires OpenTelemetry tracing and metrics.
//
// Exporters speak OTLP over HTTP and are started only when enabled in
// Config. With both disabled, the global no-op providers stay in place and
// StartSpan and the pipeline instruments cost next to nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg, observability.Resource{Name: "audioscribe"})
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "pipeline.transcribe")
//	defer span.End()
package observability
