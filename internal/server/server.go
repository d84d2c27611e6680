// Package server implements the cexpr HTTP service, which evaluates, plots,
// and describes expressions given in query parameters.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zephyrtronium/cexpr"
	"github.com/zephyrtronium/cexpr/internal/config"
	"github.com/zephyrtronium/cexpr/plot"
)

// Server serves expression evaluation and plotting over HTTP.
type Server struct {
	cfg    config.Server
	params plot.Params
	opts   []cexpr.ParseOption
	log    *slog.Logger

	// cache maps exact expression text to parsed trees. Nil when disabled.
	cache *lru.Cache

	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
}

// New creates a server from cfg. Log output goes to l.
func New(cfg *config.Config, l *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg.Server,
		params:   cfg.Plot,
		opts:     cfg.Parse.Options(),
		log:      l,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	if cfg.Server.CacheSize > 0 {
		c, err := lru.New(cfg.Server.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "creating expression cache")
		}
		s.cache = c
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/eval", s.handleEval)
	r.Get("/plot", s.handlePlot)
	r.Get("/tree", s.handleTree)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the root handler of the service.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the registry holding the server's metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("serving", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()
	select {
	case err := <-errc:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}
	s.log.Info("shutting down", "timeout", s.cfg.ShutdownTimeout.String())
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server stopped")
	}
	s.log.Info("stopped")
	return nil
}

// parse parses src with the server's options, consulting the cache first.
func (s *Server) parse(src string) (*cexpr.Expr, error) {
	if len(src) > s.cfg.MaxExprLen {
		return nil, errTooLong
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(src); ok {
			s.metrics.parses.WithLabelValues(parseCached).Inc()
			return v.(*cexpr.Expr), nil
		}
	}
	e, err := cexpr.Parse(src, s.opts...)
	if err != nil {
		s.metrics.parses.WithLabelValues(parseError).Inc()
		return nil, err
	}
	s.metrics.parses.WithLabelValues(parseOK).Inc()
	if s.cache != nil {
		s.cache.Add(src, e)
	}
	return e, nil
}

var errTooLong = errors.New("expression too long")

// logRequests logs each request and counts it by route and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.log.LogAttrs(r.Context(), slog.LevelInfo, "request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}
