package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"diskmonitor/internal/config"
	"diskmonitor/internal/controllers"
	"diskmonitor/internal/metrics"
	"diskmonitor/internal/middleware"
	"diskmonitor/internal/routes"
	"diskmonitor/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Server represents the Disk Monitor HTTP API
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	endpoints  map[string]string
}

// New creates a server with every route registered
func New(cfg *config.Config, disks controllers.DiskResolver, health *services.HealthService) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	endpoints := controllers.DefaultEndpoints(cfg.Metrics.Enabled)

	routes.RegisterInfoRoutes(router, endpoints, controllers.NewHealthController(health))
	routes.RegisterDiskRoutes(router, controllers.NewDiskController(disks))
	if cfg.Metrics.Enabled {
		metrics.Register()
		routes.RegisterMetricsRoutes(router)
	}

	return &Server{
		cfg:       cfg,
		router:    router,
		endpoints: endpoints,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:           s.cfg.Server.Addr(),
		Handler:        s.router,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    s.cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.httpServer.Addr).Msg("Starting web server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down web server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}
