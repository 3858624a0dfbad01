package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/concept-clarity/internal/adapter/glossaryfile"
	"github.com/heartmarshall/concept-clarity/internal/config"
	"github.com/heartmarshall/concept-clarity/internal/domain"
	"github.com/heartmarshall/concept-clarity/internal/service/clarity"
	"github.com/heartmarshall/concept-clarity/internal/transport/middleware"
	"github.com/heartmarshall/concept-clarity/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

type glossaryStore interface {
	Load(ctx context.Context) (*domain.Glossary, error)
}

// App holds the wired service and its HTTP server.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	Service *clarity.Service
	limiter *middleware.RateLimiter
	handler http.Handler
}

// NewStore builds the glossary store selected by cfg.
func NewStore(cfg config.GlossaryConfig) (glossaryStore, error) {
	format, err := glossaryfile.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	fs := glossaryfile.NewFileStore(cfg.Path, format)
	if cfg.Cache {
		return glossaryfile.NewSnapshotStore(fs), nil
	}
	return fs, nil
}

// New wires the store, the service and the HTTP handler.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := NewStore(cfg.Glossary)
	if err != nil {
		return nil, fmt.Errorf("glossary store: %w", err)
	}

	a := &App{
		cfg:     cfg,
		log:     logger,
		Service: clarity.NewService(logger, store),
	}

	if cfg.RateLimit.RequestsPerMinute > 0 {
		a.limiter = middleware.NewRateLimiter(rateLimitCleanupInterval)
	}

	a.handler = middleware.Stack(logger, middleware.StackConfig{
		CORS:              cfg.CORS,
		Limiter:           a.limiter,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
	})(a.routes())
	return a, nil
}

// Handler returns the HTTP handler with all middleware applied.
func (a *App) Handler() http.Handler { return a.handler }

func (a *App) routes() *http.ServeMux {
	health := rest.NewHealthHandler(a.Service, BuildVersion())
	api := rest.NewClarityHandler(a.Service, a.log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /{$}", api.Root)
	mux.HandleFunc("POST /predict", api.Predict)
	mux.HandleFunc("GET /stats", api.Stats)
	mux.HandleFunc("POST /reload", api.Reload)
	return mux
}

// Serve runs the HTTP server until ctx is canceled, then shuts it down
// within the configured timeout. SIGHUP reloads the glossary.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}
	if a.limiter != nil {
		defer a.limiter.Stop()
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				// Failures are logged by the service; the old snapshot stays live.
				_, _ = a.Service.Reload(gctx)
			}
		}
	})

	return g.Wait()
}

// Run is the application entry point for the serve command. It initializes
// the logger, checks the glossary once, and serves until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("glossary", cfg.Glossary.Path),
		slog.Bool("glossary_cache", cfg.Glossary.Cache),
	)

	a, err := New(cfg, logger)
	if err != nil {
		return err
	}

	// A missing glossary does not stop the server: /health stays up and
	// /predict reports the failure per request.
	if stats, err := a.Service.Stats(ctx); err != nil {
		logger.Warn("glossary not loadable at startup", slog.String("error", err.Error()))
	} else {
		logger.Info("glossary loaded", slog.Int("terms", stats.TotalTerms))
	}

	return a.Serve(ctx)
}
