// Package api provides the HTTP REST API server for smebench.
//
// It exposes the benchmark engine: industry and metric discovery, series
// generation, comparisons, cache control, Prometheus metrics and a
// WebSocket event stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/smebench/internal/benchmark"
	"github.com/seenimoa/smebench/internal/config"
	"github.com/seenimoa/smebench/internal/infra"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	engine  *benchmark.Engine
	wsHub   *WSHub
	limiter *infra.RateLimiter // nil when rate limiting is off
	logger  *slog.Logger
	version string
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithVersion sets the version reported by the health endpoints.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithEngine replaces the engine built from cfg.
func WithEngine(e *benchmark.Engine) Option {
	return func(s *Server) { s.engine = e }
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  slog.Default(),
		version: "dev",
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = benchmark.NewEngineFromConfig(cfg.Benchmark, s.logger)
	}
	if rps := cfg.API.RateLimitRPS; rps > 0 {
		// Burst of one second's budget, refilled one token at a time.
		s.limiter = infra.NewRateLimiter(rps, time.Second/time.Duration(rps))
	}
	s.wsHub = NewWSHub(s.logger)
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. The WebSocket hub runs for the lifetime of the server.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.wsHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		s.logger.Info("http server listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if timeout := s.cfg.API.RequestTimeout(); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/config", s.handleGetConfig)
		r.Get("/ws", s.handleWebSocket)

		r.Route("/benchmarks", func(r chi.Router) {
			r.Get("/health", s.handleBenchmarkHealth)
			r.Get("/industries", s.handleIndustries)
			r.Get("/industries/{industry}", s.handleIndustryInfo)
			r.Get("/metrics/{industry}", s.handleIndustryMetrics)

			r.Group(func(r chi.Router) {
				r.Use(s.rateLimit)
				r.Post("/data", s.handleSeriesData)
				r.Post("/compare", s.handleCompare)
			})

			r.Delete("/cache", s.handleClearCache)
		})
	})

	return r
}

// requestLogger logs one line per request at info level, or warn for 5xx.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

// rateLimit rejects requests beyond the configured per-second budget.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
		Kind:    kind,
	})
}

// writeEngineError maps an engine error onto a status code by its kind.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	kind := benchmark.Classify(err)
	status := http.StatusInternalServerError
	switch kind {
	case benchmark.KindValidation:
		status = http.StatusBadRequest
	case benchmark.KindNoData:
		status = http.StatusNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
	}
	writeError(w, status, string(kind), err.Error())
}
