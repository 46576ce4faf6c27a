// Package server implements the HTTP service mode: summaries are assembled
// from posted payloads, kept in an in-memory cache, and compared on request.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/Sumatoshi-tech/gitrewind/pkg/cache"
	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
	"github.com/Sumatoshi-tech/gitrewind/pkg/config"
	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// Route patterns.
const (
	RouteSummarize = "POST /v1/summary"
	RouteCompare   = "POST /v1/compare"
	RouteSummary   = "GET /v1/summary/{username}/{year}"
	RouteHealth    = "GET /healthz"
	RouteReady     = "GET /readyz"
	RouteMetrics   = "GET /metrics"
)

// maxClients bounds how many per-client rate limiters are remembered.
const maxClients = 10000

// clientIdleTTL is how long an idle client's limiter is kept.
const clientIdleTTL = 10 * time.Minute

// Server is the HTTP service.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	tracer trace.Tracer

	red            *observability.REDMetrics
	rewind         *observability.RewindMetrics
	metricsHandler http.Handler

	assembler *yearstats.Assembler
	engine    *compare.Engine
	summaries *cache.Cache[cache.SummaryKey, yearstats.YearSummary]
	limiters  *cache.Cache[string, *rate.Limiter]

	limitersMu sync.Mutex

	maxBody  int64
	clock    func() time.Time
	handler  http.Handler
	draining atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the wall clock used for cache TTLs.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New builds a server from validated configuration and initialized
// observability providers.
func New(cfg config.Config, providers observability.Providers, opts ...Option) (*Server, error) {
	maxBody, err := cfg.Server.MaxBodyBytes()
	if err != nil {
		return nil, err
	}

	if providers.Meter == nil {
		providers.Meter = noopmetric.NewMeterProvider().Meter("")
	}

	if providers.Tracer == nil {
		providers.Tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("create RED metrics: %w", err)
	}

	rewind, err := observability.NewRewindMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("create rewind metrics: %w", err)
	}

	s := &Server{
		cfg:            cfg,
		logger:         providers.Logger,
		tracer:         providers.Tracer,
		red:            red,
		rewind:         rewind,
		metricsHandler: providers.MetricsHandler,
		assembler:      yearstats.NewAssembler(yearstats.Options{PageCap: cfg.Analysis.RepositoryPageCap}),
		engine: compare.NewEngine(compare.Options{
			FullYearThreshold: cfg.Analysis.FullYearThreshold,
			MinProjectionDays: cfg.Analysis.MinProjectionDays,
		}),
		maxBody: maxBody,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.summaries = cache.New(
		cache.WithMaxEntries[cache.SummaryKey, yearstats.YearSummary](cfg.Cache.MaxEntries),
		cache.WithClock[cache.SummaryKey, yearstats.YearSummary](s.clock),
	)
	s.limiters = cache.New(
		cache.WithMaxEntries[string, *rate.Limiter](maxClients),
		cache.WithClock[string, *rate.Limiter](s.clock),
	)
	s.handler = observability.HTTPMiddleware(s.tracer, s.red, s.routes())

	return s, nil
}

// Handler returns the instrumented root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(RouteSummarize, s.limit(s.handleSummarize))
	mux.HandleFunc(RouteCompare, s.limit(s.handleCompare))
	mux.HandleFunc(RouteSummary, s.limit(s.handleGetSummary))
	mux.Handle(RouteHealth, observability.HealthHandler())
	mux.Handle(RouteReady, observability.ReadyHandler(observability.ReadyCheck{
		Name:  "server",
		Check: s.checkAccepting,
	}))

	if s.metricsHandler != nil {
		mux.Handle(RouteMetrics, s.metricsHandler)
	}

	return mux
}

func (s *Server) checkAccepting(_ context.Context) error {
	if s.draining.Load() {
		return errDraining
	}

	return nil
}

var errDraining = errors.New("server is shutting down")

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr(), err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.InfoContext(ctx, "server listening", "addr", ln.Addr().String())

		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.draining.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.InfoContext(ctx, "server shutting down")

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
