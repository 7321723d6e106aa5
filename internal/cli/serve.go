package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/gestures"
	httpAdapter "github.com/aretw0/gestures/pkg/adapters/http"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/aretw0/gestures/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	Port       string
	ConfigPath string
	RedisURL   string
	JournalTTL time.Duration
	LogLevel   string

	// JournalKeys seal journal values at rest: base64 AES-256 keys, the
	// first one active and the rest accepted for decryption only.
	JournalKeys []string

	// RedactSurfaces are patterns of surfaces whose gestures are journaled
	// without their value.
	RedactSurfaces []string

	// Out receives the startup messages; os.Stdout when nil.
	Out io.Writer
}

// service is the wired HTTP API with the resources it owns.
type service struct {
	engine       *gestures.Engine
	handler      http.Handler
	closeJournal func() error
}

func newService(ctx context.Context, opts ServeOptions, logger *slog.Logger) (*service, error) {
	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	journal, closeJournal, err := createJournal(ctx, opts.RedisURL, opts.JournalTTL)
	if err != nil {
		return nil, err
	}
	journal, err = secureJournal(journal, opts.JournalKeys, opts.RedactSurfaces)
	if err != nil {
		_ = closeJournal()
		return nil, err
	}

	debug := logger.Enabled(ctx, slog.LevelDebug)
	engine, err := createEngine(cfg, logger, debug, metrics.Hooks(), gestures.WithJournal(journal, 0))
	if err != nil {
		_ = closeJournal()
		return nil, err
	}

	handler := httpAdapter.NewHandler(engine,
		httpAdapter.WithGatherer(registry),
		httpAdapter.WithLogger(logger),
	)
	return &service{engine: engine, handler: handler, closeJournal: closeJournal}, nil
}

func (s *service) Close(ctx context.Context) error {
	err := s.engine.Close(ctx)
	return errors.Join(err, s.closeJournal())
}

// Serve runs the HTTP API until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	svc, err := newService(ctx, opts, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: svc.handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Starting gestures server on %s", srv.Addr)
		if opts.RedisURL != "" {
			printSystemMessage(out, "Journal: redis")
		} else {
			printSystemMessage(out, "Journal: memory")
		}
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		_ = svc.Close(context.Background())
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				logger.Error("Error killing server", "err", err)
			}
		}
		if err := svc.Close(shutdownCtx); err != nil {
			logger.Warn("Failed to release resources", "err", err)
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}
