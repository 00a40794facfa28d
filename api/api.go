// Package api exposes the HTTP routes of the transcription service.
package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/audioscribe/auth"
	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/pipeline"
	"github.com/kbukum/audioscribe/prompt"
	"github.com/kbukum/audioscribe/server"
	"github.com/kbukum/audioscribe/server/endpoint"
	"github.com/kbukum/audioscribe/server/middleware"
	"github.com/kbukum/audioscribe/validation"
)

// Routes served by the API.
const (
	PathRoot       = "/"
	PathTranscript = "/transcript"
	PathVersion    = "/version"
)

// defaultUploadMemory is how much of a multipart body is held in memory. It
// sits above the default body limit so the upload never spills to a second
// temp file before the pipeline writes its own.
const defaultUploadMemory = 32 << 20

// partHeaderAllowance covers the part headers the multipart reader counts
// against the memory budget.
const partHeaderAllowance = 1 << 20

// Processor runs a transcription request.
type Processor interface {
	Process(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Handler serves the transcription endpoint.
type Handler struct {
	proc         Processor
	log          *logger.Logger
	uploadMemory int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithUploadMemory sizes the in-memory multipart buffer for bodies of up to
// limit bytes. Pass the server's body limit.
func WithUploadMemory(limit int64) Option {
	return func(h *Handler) {
		if limit > 0 {
			h.uploadMemory = limit + partHeaderAllowance
		}
	}
}

// NewHandler creates a Handler.
func NewHandler(proc Processor, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{proc: proc, log: log.WithComponent("api"), uploadMemory: defaultUploadMemory}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register installs the auth gate and every route on r. GET / stays open;
// everything else requires a valid bearer token.
func Register(r gin.IRouter, h *Handler, authn auth.Authenticator, serviceName string, log *logger.Logger) {
	r.Use(middleware.Auth(authn, log))
	r.GET(PathRoot, endpoint.Hello())
	r.GET(PathVersion, endpoint.Version(serviceName))
	r.POST(PathTranscript, h.Transcript)
}

// transcriptForm holds the text fields of the multipart upload.
type transcriptForm struct {
	TranscriptionType string `form:"transcriptionType" validate:"max=64"`
	UserPrompt        string `form:"userPrompt" validate:"max=8000"`
}

// Transcript handles POST /transcript.
func (h *Handler) Transcript(c *gin.Context) {
	req := c.Request
	if err := req.ParseMultipartForm(h.uploadMemory); err != nil {
		if tooLarge := middleware.PayloadTooLarge(err); tooLarge != nil {
			server.RespondWithError(c, tooLarge)
			return
		}
		if !stderrors.Is(err, http.ErrNotMultipart) && !stderrors.Is(err, http.ErrMissingBoundary) {
			h.log.WithContext(req.Context()).Warn("malformed multipart body", logger.ErrorFields("parse_form", err))
		}
		server.RespondWithError(c, errors.MissingFile(pipeline.FileField))
		return
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	file, header, err := req.FormFile(pipeline.FileField)
	if err != nil {
		server.RespondWithError(c, errors.MissingFile(pipeline.FileField))
		return
	}
	defer file.Close()

	form := transcriptForm{
		TranscriptionType: req.FormValue("transcriptionType"),
		UserPrompt:        req.FormValue("userPrompt"),
	}
	if err := validation.Validate(form); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.proc.Process(req.Context(), pipeline.Request{
		Audio: &pipeline.Upload{
			Reader: file,
			Name:   header.Filename,
			Size:   header.Size,
		},
		Category:   prompt.ParseCategory(form.TranscriptionType),
		UserPrompt: form.UserPrompt,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}
