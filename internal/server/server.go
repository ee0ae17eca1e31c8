// Package server is the backend API: question generation for the
// playground and explore answers, behind a per-client rate limiter.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/ratelimit"
)

// Explorer answers explore queries in full or as a stream.
type Explorer interface {
	explore.Explorer
	Stream(ctx context.Context, query string, uc problemgen.UserContext, emit func(explore.StreamChunk) error) error
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Questions problemgen.Generator
	Explorer  Explorer

	// Limiter guards /api. Nil disables rate limiting.
	Limiter *ratelimit.Limiter

	// Registry receives the server metrics. Nil creates a fresh one.
	Registry *prometheus.Registry
}

// Server is the HTTP backend.
type Server struct {
	config    Config
	questions problemgen.Generator
	explorer  Explorer
	metrics   *metrics
	router    *gin.Engine
}

// New wires routes and middleware.
func New(cfg Config, deps Deps) *Server {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		config:    cfg,
		questions: deps.Questions,
		explorer:  deps.Explorer,
		metrics:   newMetrics(reg),
	}

	r := gin.New()
	r.Use(requestID(), accessLog(), gin.Recovery(), s.instrument())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  cfg.allowOrigin,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID, ratelimit.HeaderRemaining},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	if deps.Limiter != nil {
		api.Use(ratelimit.Middleware(deps.Limiter))
	}
	api.POST("/playground", s.handlePlayground)
	api.POST("/playground/generate", s.handleGenerate)
	api.POST("/explore", s.handleExplore)
	api.POST("/explore/stream", s.handleExploreStream)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("curio server listening on %s", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
