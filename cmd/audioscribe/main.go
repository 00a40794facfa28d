// Command audioscribe serves the authenticated audio transcription and
// summarization API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/audioscribe/api"
	"github.com/kbukum/audioscribe/auth"
	"github.com/kbukum/audioscribe/auth/cognito"
	"github.com/kbukum/audioscribe/bootstrap"
	"github.com/kbukum/audioscribe/config"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/observability"
	"github.com/kbukum/audioscribe/pipeline"
	"github.com/kbukum/audioscribe/server"
	"github.com/kbukum/audioscribe/storage/scratch"
	"github.com/kbukum/audioscribe/summarization"
	"github.com/kbukum/audioscribe/summarization/gemini"
	chatopenai "github.com/kbukum/audioscribe/summarization/openai"
	"github.com/kbukum/audioscribe/transcription"
	whisperopenai "github.com/kbukum/audioscribe/transcription/openai"
	"github.com/kbukum/audioscribe/util"
	"github.com/kbukum/audioscribe/version"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Version
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, observability.Resource{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}
	app.OnStop(bootstrap.Hook(shutdownTelemetry))

	svc, err := build(&cfg, app.Logger)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return err
	}
	app.OnStart(svc.warm, svc.server.Start)
	app.OnStop(svc.server.Stop)

	return app.Run(ctx)
}

// service holds the wired components main starts and stops.
type service struct {
	server   *server.Server
	verifier *cognito.Verifier
	log      *logger.Logger
}

// build wires storage, providers, the pipeline and the HTTP routes.
// cfg must already have defaults applied and be valid.
func build(cfg *Config, log *logger.Logger) (*service, error) {
	verifier, err := cognito.NewVerifier(cfg.Auth, cognito.WithLogger(log))
	if err != nil {
		return nil, err
	}

	transcribers := transcription.NewRegistry()
	transcribers.RegisterFactory(whisperopenai.ProviderName, whisperopenai.Factory(log))
	transcriber, err := transcribers.Create(whisperopenai.ProviderName, cfg.transcriptionOptions())
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}

	summarizers := summarization.NewRegistry()
	summarizers.RegisterFactory(chatopenai.ProviderName, chatopenai.Factory(log))
	summarizers.RegisterFactory(gemini.ProviderName, gemini.Factory(log))
	summarizer, err := summarizers.Create(cfg.Summarization.Provider, cfg.summarizationOptions())
	if err != nil {
		return nil, fmt.Errorf("summarization: %w", err)
	}

	metrics, err := observability.NewPipelineMetrics(observability.Meter())
	if err != nil {
		return nil, err
	}
	orch := pipeline.New(scratch.New(cfg.Storage, log), transcriber, summarizer, log, pipeline.WithMetrics(metrics))

	srv := server.New(cfg.Server, log)
	api.Register(srv.GinEngine(), api.NewHandler(orch, log, api.WithUploadMemory(cfg.Server.MaxBodyBytes())), auth.NewGate(verifier), cfg.Name, log)

	log.Info("Service wired", logger.Fields(
		"transcription", transcriber.Name(),
		"summarization", summarizer.Name(),
		"scratch_dir", cfg.Storage.Dir,
		"openai_key", util.MaskSecret(cfg.OpenAI.APIKey, 3),
	))
	return &service{server: srv, verifier: verifier, log: log}, nil
}

// warm prefetches the signing keys. A failure is not fatal: the verifier
// fetches them again on the first authenticated request.
func (s *service) warm(ctx context.Context) error {
	if err := s.verifier.Warm(ctx); err != nil {
		s.log.Warn("JWKS prefetch failed", logger.ErrorFields("jwks", err))
	}
	return nil
}
