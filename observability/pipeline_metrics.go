package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments recorded by the transcription
// pipeline. A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	requests      metric.Int64Counter
	stageDuration metric.Float64Histogram
	failures      metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	requests, err := meter.Int64Counter("pipeline.requests",
		metric.WithDescription("Processed transcription requests by category and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.requests counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.stage.duration histogram: %w", err)
	}

	failures, err := meter.Int64Counter("pipeline.failures",
		metric.WithDescription("Failed pipeline stages"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.failures counter: %w", err)
	}

	return &PipelineMetrics{requests: requests, stageDuration: stageDuration, failures: failures}, nil
}

// RecordRequest counts one finished request.
func (m *PipelineMetrics) RecordRequest(ctx context.Context, category, outcome string) {
	if m == nil {
		return
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("outcome", outcome),
	))
}

// RecordStage records a stage duration and, when err is non-nil, a failure.
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	))
}
