package snippetservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jhuonas/ai-snippet-service/internal/api"
	"github.com/jhuonas/ai-snippet-service/internal/config"
	"github.com/jhuonas/ai-snippet-service/internal/factory"
	"github.com/jhuonas/ai-snippet-service/internal/health"
	"github.com/jhuonas/ai-snippet-service/internal/logger"
	"github.com/jhuonas/ai-snippet-service/internal/services"
	"github.com/jhuonas/ai-snippet-service/internal/store"
	"github.com/jhuonas/ai-snippet-service/internal/summarizer"
)

const serviceName = "snippet-service"

// Options override configuration loaded from the environment.
type Options struct {
	BuildTarget string
}

// Run starts the snippet service HTTP server and blocks until shutdown or error.
func Run(opts Options) error {
	cfg, err := config.New()
	if err != nil {
		zlog.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if opts.BuildTarget != "" {
		if err := cfg.OverrideBuildTarget(opts.BuildTarget); err != nil {
			zlog.Error().Err(err).Msg("Invalid build-target override")
			return err
		}
	}

	log := logger.NewWithOptions(serviceName, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zlog.Logger = log

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("summarizer", cfg.Summarizer).
		Int("http_port", cfg.HTTPPort).
		Msg("Snippet service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, provider, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	svcHealth := startHealthCheckers(ctx, cfg, log, st, provider)

	router := api.NewRouter(api.Deps{
		Snippets:   services.NewSnippetService(provider, st.Snippets()),
		Health:     svcHealth,
		Logger:     log,
		CORSOrigin: cfg.CORSOrigin,
	})

	// Block startup until dependencies report healthy; fail fast otherwise
	if cfg.WaitForHealthy {
		if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
			log.Error().Stack().Err(err).Msg("startup health check failed")
			return err
		}
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and enforces fail-fast on missing deps.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, summarizer.Provider, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, err
	}
	provider, err := factory.NewSummarizer(cfg, log)
	if err != nil {
		_ = st.Close()
		log.Error().Stack().Err(err).Msg("Summarizer unavailable")
		return nil, nil, err
	}
	return st, provider, nil
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, provider summarizer.Provider) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	svcHealth := health.NewServiceHealthChecker(log,
		store.NewStoreHealthChecker(st, log, probeTimeout),
		summarizer.NewHealthChecker(provider, log, probeTimeout),
	)
	svcHealth.StartAll(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// summarization calls can be slow; keep the write window above typical LLM latency
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
