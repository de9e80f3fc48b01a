// Package server exposes the statement engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/equity/internal/equity"
)

const shutdownTimeout = 10 * time.Second

// Server serves statements computed by a shared Engine.
type Server struct {
	engine  *equity.Engine
	company string
	logger  *slog.Logger
}

// New creates a Server. company labels rendered statements.
func New(engine *equity.Engine, company string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, company: company, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(StructuredLogging(s.logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Warn("disabling trusted proxies", "error", err)
	}

	r.GET("/healthz", handleHealth)

	api := r.Group("/api/v1")
	{
		api.GET("/catalog", s.handleCatalog)
		api.POST("/equity-statement", s.handleStatement)
	}
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
