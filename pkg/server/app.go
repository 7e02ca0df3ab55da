package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SigPull/internal/handler/api"
	"SigPull/internal/usecase"
	pkgch "SigPull/pkg/clickhouse"
	"SigPull/pkg/config"
	xhttp "SigPull/pkg/http"
	pkgkafka "SigPull/pkg/kafka"
	applogger "SigPull/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	runner    *usecase.ScanRunner
	collector *usecase.SnapshotCollector
	consumer  *pkgkafka.Consumer
	kh        *usecase.KafkaSnapshotsHandler
	query     *usecase.AnalysisQuery
	proc      *usecase.ResultProcessor
	chClient  *pkgch.Client

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	runner *usecase.ScanRunner,
	collector *usecase.SnapshotCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotsHandler,
	query *usecase.AnalysisQuery,
	proc *usecase.ResultProcessor,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		runner:    runner,
		collector: collector,
		consumer:  consumer,
		kh:        kh,
		query:     query,
		proc:      proc,
		chClient:  chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := api.NewAnalysisEchoHandler(a.log, a.query)
	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start the periodic scan loop
	if err := a.runner.Start(ctx); err != nil {
		return err
	}
	a.log.Info("scan loop started",
		applogger.Strings("symbols", a.cfg.Scanner.Symbols),
		applogger.String("backend", a.cfg.Backend.Type))

	// Start stream ingestion if configured
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				a.log.Error("collector error", applogger.Error(err))
			}
		}()
		a.log.Info("stream collector started", applogger.String("url", a.cfg.Scanner.WebSocketURL))
	}

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.runner.Stop()

	if a.collector != nil {
		if err := a.collector.Shutdown(ctx); err != nil {
			a.log.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Flush aggregated logs before the producer goes away
	a.log.RemoveCollector()

	// Close the configured sink (kafka producer, clickhouse pool, or file)
	if a.proc != nil {
		a.proc.Close()
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
