// Package server exposes the activity parser over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/pagination"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// CacheTTL enables the parse result cache when positive.
	CacheTTL time.Duration

	// Logger receives request logs; the zero value discards them.
	Logger zerolog.Logger

	// Metrics defaults to a fresh registry when nil.
	Metrics *Metrics
}

// Server wires the parser, cache, metrics and routes into a gin engine.
type Server struct {
	engine  *gin.Engine
	parser  *activity.Parser
	cache   *ResultCache
	sorter  *pagination.FactorSorter
	metrics *Metrics
	logger  zerolog.Logger
}

// New builds a Server around parser.
func New(parser *activity.Parser, opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}

	s := &Server{
		engine:  gin.New(),
		parser:  parser,
		sorter:  pagination.NewFactorSorter(),
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if opts.CacheTTL > 0 {
		s.cache = NewResultCache(opts.CacheTTL)
	}

	s.engine.Use(gin.Recovery(), s.requestContext(), s.observe())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/parse", s.parse)
		v1.GET("/classify", s.classify)
		v1.GET("/factors", s.listFactors) // ?category=&sort=&limit=&offset=&page=&page_size=
		v1.GET("/factors/:name", s.getFactor)
	}
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
