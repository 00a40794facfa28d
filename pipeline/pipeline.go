package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/kbukum/audioscribe/auth/authctx"
	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/observability"
	"github.com/kbukum/audioscribe/prompt"
	"github.com/kbukum/audioscribe/storage/scratch"
	"github.com/kbukum/audioscribe/summarization"
	"github.com/kbukum/audioscribe/transcription"
)

// Stage names used in logs, spans and metrics.
const (
	StageAcquire    = "acquire"
	StageTranscribe = "transcribe"
	StageSummarize  = "summarize"
)

// Outcomes recorded per request.
const (
	OutcomeRejected    = "rejected"
	OutcomeFailed      = "failed"
	OutcomePassthrough = "passthrough"
	OutcomeSummarized  = "summarized"
)

// FileField is the multipart field the upload arrives in.
const FileField = "file"

// Storage persists an upload for the duration of one request.
type Storage interface {
	Acquire(ctx context.Context, r io.Reader, originalName string) (*scratch.Handle, error)
}

// Upload is the audio received from the client.
type Upload struct {
	Reader io.Reader
	Name   string
	// Size is the declared byte count. Zero means the upload is empty.
	Size int64
}

// Request is one transcription request.
type Request struct {
	Audio      *Upload
	Category   prompt.Category
	UserPrompt string
}

// Result is the response payload.
type Result struct {
	Transcription string `json:"transcription"`
	// Summarized is false when the raw transcript was returned.
	Summarized bool `json:"-"`
}

// Orchestrator runs requests against injected collaborators.
type Orchestrator struct {
	store       Storage
	transcriber transcription.Transcriber
	summarizer  summarization.Summarizer
	metrics     *observability.PipelineMetrics
	log         *logger.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMetrics records stage durations and request outcomes.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an Orchestrator.
func New(store Storage, t transcription.Transcriber, s summarization.Summarizer, log *logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:       store,
		transcriber: t,
		summarizer:  s,
		log:         log.WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process runs req. Errors are *errors.AppError values.
func (o *Orchestrator) Process(ctx context.Context, req Request) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.process")
	defer span.End()
	observability.SetSpanAttributes(ctx,
		observability.AttrCategory, req.Category.String(),
		observability.AttrRequestID, logger.RequestIDFromContext(ctx),
		observability.AttrUserID, authctx.UserID(ctx),
	)

	res, outcome, err := o.run(ctx, req)
	observability.SetSpanAttributes(ctx, observability.AttrOutcome, outcome)
	observability.SetSpanError(ctx, err)
	o.metrics.RecordRequest(ctx, req.Category.String(), outcome)
	return res, err
}

func (o *Orchestrator) run(ctx context.Context, req Request) (*Result, string, error) {
	log := o.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldCategory, req.Category.String(),
		logger.FieldUserID, authctx.UserID(ctx),
	))

	if req.Audio == nil || req.Audio.Reader == nil || req.Audio.Size == 0 {
		return nil, OutcomeRejected, errors.MissingFile(FileField)
	}

	var handle *scratch.Handle
	err := o.stage(ctx, StageAcquire, func(ctx context.Context) (err error) {
		handle, err = o.store.Acquire(ctx, req.Audio.Reader, req.Audio.Name)
		return err
	})
	if stderrors.Is(err, scratch.ErrEmptyUpload) {
		return nil, OutcomeRejected, errors.MissingFile(FileField)
	}
	if err != nil {
		log.Error("failed to store upload", logger.ErrorFields(StageAcquire, err))
		return nil, OutcomeFailed, errors.ProcessingFailed(err)
	}
	defer func() {
		if err := handle.Release(); err != nil {
			log.Warn("failed to remove scratch file", logger.ErrorFields("release", err))
		}
	}()

	var transcript string
	err = o.stage(ctx, StageTranscribe, func(ctx context.Context) (err error) {
		transcript, err = o.transcriber.Transcribe(ctx, handle.Path())
		return err
	})
	if err != nil {
		log.Error("transcription failed", logger.ErrorFields(StageTranscribe, err))
		return nil, OutcomeFailed, errors.ProcessingFailed(err)
	}

	selected := prompt.Select(req.Category, transcript, req.UserPrompt)
	if selected.IsPassthrough() {
		log.Info("returning raw transcript", logger.Fields("chars", len(transcript)))
		return &Result{Transcription: transcript}, OutcomePassthrough, nil
	}

	var summary string
	err = o.stage(ctx, StageSummarize, func(ctx context.Context) (err error) {
		summary, err = o.summarizer.Summarize(ctx, selected.Text())
		return err
	})
	if err != nil {
		log.Error("summarization failed", logger.ErrorFields(StageSummarize, err))
		return nil, OutcomeFailed, errors.ProcessingFailed(err)
	}

	log.Info("transcript summarized", logger.Fields("chars", len(summary)))
	return &Result{Transcription: summary, Summarized: true}, OutcomeSummarized, nil
}

// stage runs fn inside a child span and records its duration.
func (o *Orchestrator) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := observability.StartSpan(ctx, "pipeline."+name)
	defer span.End()
	observability.SetSpanAttributes(ctx, observability.AttrStage, name)

	start := time.Now()
	err := fn(ctx)
	o.metrics.RecordStage(ctx, name, time.Since(start), err)
	observability.SetSpanError(ctx, err)
	return err
}
