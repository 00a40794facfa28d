package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/audioscribe/logger"
)

// App is a service with uniform lifecycle management. C is the typed config.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 30 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	return app, nil
}

// Run starts the application and blocks until ctx is canceled or a
// SIGINT/SIGTERM arrives, then shuts down gracefully. When startup fails,
// the stop hooks registered so far still run.
func (a *App[C]) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, a.signals...)
	defer stop()

	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := runHooks(ctx, "start", a.onStart); err != nil {
		return a.abort(err)
	}
	if err := runHooks(ctx, "ready", a.onReady); err != nil {
		return a.abort(err)
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	<-ctx.Done()
	a.Logger.Info("Shutdown requested")
	return a.shutdown()
}

func (a *App[C]) abort(cause error) error {
	a.Logger.Error("Startup failed", logger.ErrorFields("startup", cause))
	if err := a.shutdown(); err != nil {
		a.Logger.Warn("Cleanup after failed startup reported errors", logger.ErrorFields("shutdown", err))
	}
	return cause
}

// shutdown runs stop hooks on a fresh context bounded by the graceful timeout.
func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	start := time.Now()
	err := runStopHooks(ctx, a.onStop)
	if err != nil {
		a.Logger.Error("Graceful shutdown completed with errors", logger.ErrorFields("shutdown", err))
		return err
	}
	a.Logger.Info("Graceful shutdown completed", logger.DurationFields("shutdown", time.Since(start)))
	return nil
}
